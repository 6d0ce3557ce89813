package report

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/factory"
	"Go2FlowTag/internal/model"
	"context"
)

func init() {
	factory.RegisterWriter("text", func(_ context.Context, def config.WriterDef) (model.Writer, error) {
		return NewTextWriter(def.Text.Path), nil
	})
	factory.RegisterWriter("gob", func(_ context.Context, def config.WriterDef) (model.Writer, error) {
		return NewGobWriter(def.Gob.RootPath), nil
	})
	factory.RegisterWriter("clickhouse", func(ctx context.Context, def config.WriterDef) (model.Writer, error) {
		return NewClickHouseWriter(ctx, def.ClickHouse)
	})
}
