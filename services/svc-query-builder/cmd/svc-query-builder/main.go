package main

import (
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/runtime"
)

func main() {
	runtime.New().Run()
}
