package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string        `env:"APP_NAME,required"`
	Port     int           `env:"APP_PORT" envDefault:"8080"`
	Ratio    float64       `env:"APP_RATIO"`
	Enabled  bool          `env:"APP_ENABLED"`
	Timeout  time.Duration `env:"APP_TIMEOUT"`
	IDs      []int64       `env:"APP_IDS" envSeparator:";"`
	Tags     []string      `env:"APP_TAGS"`
	Untagged string
	hidden   string `env:"APP_HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	out, err := MarshalEnv(&sample{
		Name:     "edagent",
		Port:     9000,
		Ratio:    0.25,
		Enabled:  true,
		Timeout:  45 * time.Second,
		IDs:      []int64{1, 22},
		Tags:     []string{"a", "b"},
		Untagged: "skip",
		hidden:   "skip",
	})
	require.NoError(t, err)

	assert.Equal(t, "APP_NAME=edagent\n"+
		"APP_PORT=9000\n"+
		"APP_RATIO=0.25\n"+
		"APP_ENABLED=true\n"+
		"APP_TIMEOUT=45s\n"+
		"APP_IDS=1;22\n"+
		"APP_TAGS=a,b\n", out)
}

func TestMarshalEnv_SkipsZeroValues(t *testing.T) {
	out, err := MarshalEnv(&sample{Name: "only"})
	require.NoError(t, err)
	assert.Equal(t, "APP_NAME=only\n", out)

	out, err = MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMarshalEnv_RejectsNonStructPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)

	n := 3
	_, err = MarshalEnv(&n)
	assert.Error(t, err)
}
