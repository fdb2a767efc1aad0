package errors

// ErrorCode identifies a distinct error condition.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeUnknownParameterKey  ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103

	// Data errors (200-299)
	ErrCodeEmptyPriceSeries     ErrorCode = 200
	ErrCodeUnorderedPriceSeries ErrorCode = 201
	ErrCodeMissingClosePrice    ErrorCode = 202
	ErrCodeDataLoadFailed       ErrorCode = 203
	ErrCodeIndexOutOfRange      ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Strategy errors (400-499)
	ErrCodeUnknownStrategy     ErrorCode = 400
	ErrCodeStrategyNotPrepared ErrorCode = 401
	ErrCodeStrategyConfigError ErrorCode = 402

	// Trading errors (500-599)
	ErrCodeJournalFailed ErrorCode = 500

	// Backtest errors (600-699)
	ErrCodeEngineNotReady  ErrorCode = 600
	ErrCodeEngineRunning   ErrorCode = 601
	ErrCodeEngineCompleted ErrorCode = 602
	ErrCodeMissingData     ErrorCode = 603
	ErrCodeMissingStrategy ErrorCode = 604
)
