package publish

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/factory"
	"Go2FlowTag/internal/model"
	"context"
)

func init() {
	factory.RegisterWriter("nats", func(_ context.Context, def config.WriterDef) (model.Writer, error) {
		return NewPublisher(def.NATS)
	})
}
