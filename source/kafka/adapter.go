package kafka

import "context"

// Record is one raw message pulled from the subscribed topic, handed
// to the pipeline in delivery order.
type Record struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
}

// EmitFunc delivers one record to the pipeline. The driver does not
// pull the next record until it returns.
type EmitFunc func(Record) error

type Adapter interface {
	Configure(Config) error
	Run(context.Context, EmitFunc) error
	Close() error
}
