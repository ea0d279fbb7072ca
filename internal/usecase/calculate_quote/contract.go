package calculate_quote

// MetricsRecorder учет расчетов цены
type MetricsRecorder interface {
	IncPriceCalculation(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
