package health

// Response состояние сервиса и его зависимостей
type Response struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components"`
}

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
)
