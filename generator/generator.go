package generator

import "context"

type Generator interface {
	Complete(ctx context.Context, system string, user string, temperature float32) (string, error)
}
