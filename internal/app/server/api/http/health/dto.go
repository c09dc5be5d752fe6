package health

import "pressroom/internal/app/server/store"

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status string      `json:"status" example:"OK" doc:"Состояние песочницы"`
	Uptime string      `json:"uptime" example:"1m30s" doc:"Время с запуска"`
	Data   store.Stats `json:"data" doc:"Объем засеянных данных"`
	Faults int         `json:"faults" example:"0" doc:"Активные правила сбоев"`
}
