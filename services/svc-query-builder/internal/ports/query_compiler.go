package ports

import "github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"

// QueryCompiler translates queries into parameterized SQL.
type QueryCompiler interface {
	Compile(query model.Query) (model.Statement, error)
	CompileSimple(condition model.SimpleCondition) (model.Statement, error)
}
