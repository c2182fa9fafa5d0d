package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// ChunkCommander sends catalog commands.
type ChunkCommander struct {
	sender Sender
}

// NewChunkCommander returns new ChunkCommander using provided sender for sending messages.
func NewChunkCommander(sender Sender) ChunkCommander {
	return ChunkCommander{
		sender: sender,
	}
}

// SendSyncChunk sends chunk of product records to be stored in scope.
func (c ChunkCommander) SendSyncChunk(ctx context.Context, scope Scope, products []json.RawMessage) error {
	cmd := SyncChunk{
		Type:   TypeSync,
		Config: scope,
		Data:   products,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal sync chunk: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}

// SendRefresh sends command refreshing products with provided SKUs in scope.
func (c ChunkCommander) SendRefresh(ctx context.Context, scope Scope, skus []string) error {
	cmd := RefreshCommand{
		Type:   TypeRefresh,
		Config: scope,
		Data:   make([]SKURef, 0, len(skus)),
	}
	for _, sku := range skus {
		cmd.Data = append(cmd.Data, SKURef{SKU: sku})
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal refresh command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
