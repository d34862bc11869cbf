package model

type InstrumentType string

const (
	InstrumentTypeStock InstrumentType = "STOCK"
	InstrumentTypeIndex InstrumentType = "INDEX"
)

// MarketSummary is one row of the market_summary table.
type MarketSummary struct {
	Symbol               string
	Sector               string
	InstrumentType       InstrumentType
	CurrentCallIV        float64
	CurrentPutIV         float64
	CurrentPrice         float64
	YesterdayClosePrice  float64
	YesterdayCloseCallIV float64
	Today930CallIV       float64
	SimilarResultsAvgIV  float64
	Avg7DayCallIV        float64
	Avg21DayCallIV       float64
	Avg90DayCallIV       float64
	ResultMonth          string
	IsExpiryWeek         bool
}

// SampleMarketSummaries is the demo dataset loaded by the seed command.
func SampleMarketSummaries() []MarketSummary {
	return []MarketSummary{
		sample("RELIANCE", 25.5, 24.8, 2850.75, 22.3, 23.1, "Oil & Gas", InstrumentTypeStock, 23.2, true),
		sample("INFY", 18.9, 19.2, 1456.30, 16.8, 17.5, "IT Services", InstrumentTypeStock, 17.8, false),
		sample("HDFC", 21.3, 20.9, 2785.60, 19.5, 20.1, "Banking", InstrumentTypeStock, 20.2, true),
		sample("TCS", 16.7, 17.1, 3654.20, 15.2, 15.8, "IT Services", InstrumentTypeStock, 16.1, false),
		sample("ICICIBANK", 23.8, 23.2, 1087.45, 21.6, 22.4, "Banking", InstrumentTypeStock, 22.1, true),
		sample("NIFTY", 19.5, 19.8, 21650.30, 18.2, 18.9, "Index", InstrumentTypeIndex, 18.7, true),
		sample("BANKNIFTY", 22.1, 21.9, 46875.80, 20.3, 21.2, "Banking Index", InstrumentTypeIndex, 20.8, true),
		sample("MARUTI", 20.4, 20.1, 10945.25, 18.8, 19.3, "Automobiles", InstrumentTypeStock, 19.2, false),
		sample("ASIANPAINT", 17.6, 17.9, 3251.70, 16.1, 16.8, "Paints & Coatings", InstrumentTypeStock, 16.9, false),
		sample("ADANIENTS", 28.3, 27.8, 2456.90, 25.7, 26.4, "Renewable Energy", InstrumentTypeStock, 26.1, true),
		sample("WIPRO", 15.2, 15.5, 425.60, 14.1, 14.7, "IT Services", InstrumentTypeStock, 14.8, false),
		sample("HCLTECH", 16.8, 17.2, 1789.40, 15.3, 15.9, "IT Services", InstrumentTypeStock, 15.7, false),
		sample("AXISBANK", 24.7, 24.2, 1134.80, 22.9, 23.6, "Banking", InstrumentTypeStock, 23.4, true),
		sample("KOTAKBANK", 19.8, 20.1, 1687.30, 18.4, 19.0, "Banking", InstrumentTypeStock, 18.9, false),
		sample("SBIN", 22.5, 22.1, 798.45, 20.7, 21.3, "Banking", InstrumentTypeStock, 21.2, true),
		sample("BHARTIARTL", 18.3, 18.7, 1654.20, 16.9, 17.4, "Telecom", InstrumentTypeStock, 17.3, false),
		sample("ONGC", 21.9, 21.5, 487.60, 19.8, 20.5, "Oil & Gas", InstrumentTypeStock, 20.3, true),
	}
}

func sample(
	symbol string,
	callIV, putIV, price, yesterdayCallIV, today930CallIV float64,
	sector string,
	instrumentType InstrumentType,
	similarAvgIV float64,
	expiryWeek bool,
) MarketSummary {
	return MarketSummary{
		Symbol:               symbol,
		Sector:               sector,
		InstrumentType:       instrumentType,
		CurrentCallIV:        callIV,
		CurrentPutIV:         putIV,
		CurrentPrice:         price,
		YesterdayCloseCallIV: yesterdayCallIV,
		Today930CallIV:       today930CallIV,
		SimilarResultsAvgIV:  similarAvgIV,
		ResultMonth:          "Dec2024",
		IsExpiryWeek:         expiryWeek,
	}
}
