package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SMTPConfig carries the outbound mail settings for stock alerts.
type SMTPConfig struct {
	From         string
	To           string
	Server       string
	Port         string
	User         string
	Password     string
	AuthDisabled bool
}

// Notifier records low-stock events in Redis and mails the purchasing
// contact. Each product alerts at most once per day; a daily summary lists
// everything that fired.
type Notifier struct {
	rdb  *redis.Client
	ctx  context.Context
	smtp SMTPConfig
	log  *zap.Logger
}

func NewNotifier(rdb *redis.Client, ctx context.Context, smtpCfg SMTPConfig, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{rdb: rdb, ctx: ctx, smtp: smtpCfg, log: log}
}

type stockAlertEntry struct {
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	MinStock  int       `json:"min_stock"`
	Time      time.Time `json:"time"`
}

const dailyStockAlertKey = "stockalert:log:daily"

// LowStock is called after a committed sale left the product at or below its
// minimum. Deduped per product per day via SETNX.
func (n *Notifier) LowStock(productID, quantity, minStock int) {
	dedupKey := fmt.Sprintf("stockalert:sent:%d:%s", productID, time.Now().Format("2006-01-02"))
	set, err := n.rdb.SetNX(n.ctx, dedupKey, 1, 24*time.Hour).Result()
	if err != nil {
		n.log.Warn("could not dedup stock alert", zap.Error(err))
		return
	}
	if !set {
		return
	}

	entry := stockAlertEntry{ProductID: productID, Quantity: quantity, MinStock: minStock, Time: time.Now()}
	data, _ := json.Marshal(entry)
	_ = n.rdb.RPush(n.ctx, dailyStockAlertKey, data).Err()

	subject := fmt.Sprintf("⚠️ STOCK ALERT: product %d low", productID)
	body := fmt.Sprintf("Product: %d\nQuantity: %d\nMinimum: %d\nTime: %s",
		productID, quantity, minStock, time.Now().Format(time.RFC3339))
	n.sendMail(subject, body)
}

// StartDailySummary mails one digest of the day's alerts around closing time.
func (n *Notifier) StartDailySummary(interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}
		time.Sleep(time.Until(next))
		n.SendDailySummary()
	}
}

func (n *Notifier) SendDailySummary() {
	entries, err := n.rdb.LRange(n.ctx, dailyStockAlertKey, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return
	}
	_ = n.rdb.Del(n.ctx, dailyStockAlertKey).Err() // clear after reading

	var sb strings.Builder
	sb.WriteString("Products that hit their minimum today:\n\n")
	for _, item := range entries {
		var entry stockAlertEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			fmt.Fprintf(&sb, "- product %d: %d on hand (minimum %d) at %s\n",
				entry.ProductID, entry.Quantity, entry.MinStock, entry.Time.Format("15:04"))
		}
	}

	n.sendMail(fmt.Sprintf("Daily stock summary: %d alerts", len(entries)), sb.String())
}

func (n *Notifier) sendMail(subject, body string) {
	if n.smtp.Server == "" {
		return
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.smtp.From, n.smtp.To, subject, body)

	addr := fmt.Sprintf("%s:%s", n.smtp.Server, n.smtp.Port)
	auth := smtp.PlainAuth("", n.smtp.User, n.smtp.Password, n.smtp.Server)
	if n.smtp.AuthDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, n.smtp.From, []string{n.smtp.To}, []byte(msg)); err != nil {
			n.log.Warn("failed to send alert email", zap.Error(err))
		}
	}()
}
