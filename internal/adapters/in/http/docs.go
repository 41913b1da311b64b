// Package http is the inbound HTTP adapter of the order service.
//
// Routes:
//
//	POST /orders                        place an order (201)
//	GET  /orders/{id}                   get an order
//	GET  /orders/{id}/track             tracking view
//	GET  /orders/customer/{customerId}  a customer's orders, newest first
//	PUT  /orders/{id}/cancel            cancel an order
//	GET  /health                        liveness and order count
//	GET  /metrics                       Prometheus exposition
//	GET  /openapi.json, /swagger/*      API description and Swagger UI
//
// Every /orders response is wrapped in Envelope. Requests to /orders are checked
// against the embedded openapi.yaml before they reach the handlers.
package http
