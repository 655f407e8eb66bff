package inbox

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"corpsite-back/pkg/kafka"
)

func TestIsBot(t *testing.T) {
	cases := []struct {
		name      string
		userAgent string
		want      bool
	}{
		{"empty ua", "", true},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", true},
		{"yandex crawler", "Mozilla/5.0 (compatible; YandexBot/3.0)", true},
		{"curl", "curl/8.5.0", true},
		{"wget", "Wget/1.21", true},
		{"python requests", "python-requests/2.31.0", true},
		{"headless chrome", "Mozilla/5.0 HeadlessChrome/120.0", true},
		{"uppercase marker", "SUPERSPIDER/1.0", true},
		{"desktop chrome", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36", false},
		{"mobile safari", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Version/17.0 Mobile/15E148 Safari/604.1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsBot(tc.userAgent))
		})
	}
}

// Сломанное событие не должно помечаться обработанным: офсет остаётся на
// месте, и Kafka доставит его повторно.
func TestWorkerDoesNotMarkOnFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	s := NewSubscriber(zap.New(core), Config{Topic: "site-visits"}, nil, nil, nil, nil)

	key, err := uuid.New().MarshalBinary()
	require.NoError(t, err)

	marked := false
	msg := &kafka.MessageWithMarkFunc{
		Message: &sarama.ConsumerMessage{Key: key, Value: []byte("not a json payload")},
		Mark:    func() { marked = true },
	}

	pipe := make(chan *kafka.MessageWithMarkFunc, 1)
	pipe <- msg
	close(pipe)

	s.worker(context.Background(), 0, pipe)

	assert.False(t, marked)
	assert.Equal(t, 0, logs.FilterMessage("Visit event processed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Error processing message").Len())
}
