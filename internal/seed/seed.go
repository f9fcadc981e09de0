// Package seed 负责加载初始 FAQ 集合。
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"faq-support-go/internal/config"
	"faq-support-go/internal/service"
)

// ObjectReader 读取对象存储中的一个对象。
type ObjectReader interface {
	ReadObject(ctx context.Context, objectName string) ([]byte, error)
}

// Builtin 返回内置的 FAQ 集合，顺序即展示给模型的顺序。
func Builtin() []service.FAQInput {
	return []service.FAQInput{
		{
			Question: "What is your shipping policy?",
			Answer:   "We ship within India in 1–3 business days. International shipping (USA/UK/EU) takes 7–12 business days. Orders over ₹1999 ship free in India.",
		},
		{
			Question: "Do you ship to USA?",
			Answer:   "Yes. USA delivery typically takes 7–12 business days. Customs duties (if any) are paid by the customer.",
		},
		{
			Question: "What is your return/refund policy?",
			Answer:   "Returns accepted within 7 days of delivery for unused items in original packaging. Refunds are processed to the original payment method within 5–7 business days after pickup/inspection.",
		},
		{
			Question: "What are your support hours?",
			Answer:   "Support is available Mon–Sat, 10:00 AM to 7:00 PM IST. You can leave a message anytime and we’ll respond during working hours.",
		},
	}
}

// Load 按配置的来源读取 FAQ 集合。objects 仅在来源为 minio 时使用。
func Load(ctx context.Context, cfg config.SeedConfig, objects ObjectReader) ([]service.FAQInput, error) {
	switch cfg.Source {
	case "", "builtin":
		return Builtin(), nil
	case "file":
		data, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		return Parse(data)
	case "minio":
		if objects == nil {
			return nil, fmt.Errorf("seed source minio requires a configured MinIO endpoint")
		}
		data, err := objects.ReadObject(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return Parse(data)
	default:
		return nil, fmt.Errorf("unsupported seed source %q", cfg.Source)
	}
}

// Parse 解析 [{"question": "...", "answer": "..."}] 格式的 JSON。
func Parse(data []byte) ([]service.FAQInput, error) {
	var entries []service.FAQInput
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed json: %w", err)
	}
	return entries, nil
}
