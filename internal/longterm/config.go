package longterm

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/radieske/cricket-bet-platform/internal/questions"
)

// Config é o documento estático do ciclo de apostas de longo prazo
type Config struct {
	EventID          string               `json:"eventId"`
	LongTermLockAt   time.Time            `json:"longTermLockAt"`
	ReopenEnabled    bool                 `json:"reopenEnabled"`
	ReopenCostPoints int                  `json:"reopenCostPoints"`
	Questions        []questions.Question `json:"questions"`
}

// LoadConfig lê o documento de longo prazo do disco
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read longterm config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode longterm config: %w", err)
	}
	return cfg, nil
}
