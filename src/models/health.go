package models

const HealthStatusHealthy = "healthy"

type MHealth struct {
	Status string `json:"status"`
}
