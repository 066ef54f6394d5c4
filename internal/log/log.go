// Package log emits one JSON line per event over the stdlib logger, so the
// same stream works for stdout and the optional log file. Events carry the
// request id and the acting customer when a fiber context is available.
package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type entry struct {
	TS       string         `json:"ts"`
	Level    string         `json:"level"`
	Action   string         `json:"action"`
	ReqID    string         `json:"req_id,omitempty"`
	IP       string         `json:"ip,omitempty"`
	Route    string         `json:"route,omitempty"`
	Customer int64          `json:"customer_id,omitempty"`
	Err      string         `json:"err,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{
		TS:     time.Now().UTC().Format(time.RFC3339),
		Level:  level,
		Action: action,
		Fields: fields,
	}
	if c != nil {
		e.IP = c.IP()
		e.Route = c.Method() + " " + c.Path()
		if rid, ok := c.Locals("requestid").(string); ok {
			e.ReqID = rid
		}
		if cid, ok := c.Locals("customerID").(int64); ok {
			e.Customer = cid
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

// Info records routine activity (cart changes, shortage dialogs shown).
func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write("info", c, action, nil, fields)
}

// Audit records state-changing outcomes worth keeping: logins, orders
// created, payments, console commands.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}

// Security records denials and suspect input.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}

// Error records failures, most of them backend round trips gone wrong.
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
