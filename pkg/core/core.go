package core

// Feeder supplies a time-ordered bar sequence for a pair
type Feeder interface {
	Candles(pair string) ([]Candle, error)
}

// ColumnStorage persists computed indicator columns under a caller chosen key
type ColumnStorage interface {
	// Save stores the columns, replacing any previous columns with the same name
	Save(key string, columns Columns) error

	// Load returns every column stored under key
	Load(key string) (Columns, error)

	// Keys lists the stored keys in lexical order
	Keys() ([]string, error)
}
