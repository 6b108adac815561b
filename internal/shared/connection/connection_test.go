package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresConfig(t *testing.T) {
	cfg := PostgresConfig{Host: "db", User: "app", Password: "secret", Name: "hiring", Port: "5432"}

	assert.Equal(t, "host=db user=app password=secret dbname=hiring port=5432 sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://app:secret@db:5432/hiring?sslmode=disable", cfg.URL())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.URL(), "sslmode=require")
}

func TestNewKafkaReader_TopicModes(t *testing.T) {
	single := NewKafkaReader("localhost:9092", "group", "a")
	defer single.Close()
	assert.Equal(t, "a", single.Config().Topic)

	multi := NewKafkaReader("localhost:9092", "group", "a", "b")
	defer multi.Close()
	assert.Equal(t, []string{"a", "b"}, multi.Config().GroupTopics)
}
