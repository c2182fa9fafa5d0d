package commander_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/MichalMitros/catalog-sync/pkg/v1/commander"
	"github.com/MichalMitros/catalog-sync/pkg/v1/commander/mocks"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitRabbitMQSenderSend(t *testing.T) {
	sku := faker.Word()
	routingKey := faker.Word()

	tests := map[string]struct {
		body           []byte
		publish        bool
		publisherError error
		wantErr        error
	}{
		"ok": {
			body:    []byte(fmt.Sprintf(`{"type":"catalog-refresh","config":{"tenant":"acme","store":"de"},"data":[{"sku":"%s"}]}`, sku)),
			publish: true,
		},
		"publisher error": {
			body:           []byte(`{"type":"catalog-sync"}`),
			publish:        true,
			publisherError: assert.AnError,
			wantErr:        assert.AnError,
		},
		"empty message": {
			wantErr: commander.ErrEmptyMessage,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			publisher := mocks.NewRabbitMQPublisher(t)
			if tt.publish {
				publisher.On("Publish", mock.Anything, routingKey, tt.body).Return(tt.publisherError)
			}

			sender := commander.NewRabbitMQSender(publisher, routingKey)
			err := sender.Send(context.TODO(), tt.body)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitRabbitMQCommander(t *testing.T) {
	routingKey := "catalog.sync"
	scope := commander.Scope{Tenant: "acme", Store: "de"}

	publisher := mocks.NewRabbitMQPublisher(t)
	publisher.On("Publish", mock.Anything, routingKey, mock.MatchedBy(func(body []byte) bool {
		var chunk commander.SyncChunk
		return json.Unmarshal(body, &chunk) == nil &&
			chunk.Type == commander.TypeSync &&
			chunk.Config == scope &&
			len(chunk.Data) == 2
	})).Return(nil).Once()

	cmd := commander.NewRabbitMQCommander(publisher, routingKey)
	err := cmd.SendSyncChunk(context.TODO(), scope, []json.RawMessage{
		json.RawMessage(`{"sku":"ABC123"}`),
		json.RawMessage(`{"sku":"DEF456"}`),
	})

	require.NoError(t, err, "shouldn't return any error")
}
