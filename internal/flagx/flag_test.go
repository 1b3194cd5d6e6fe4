package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "double dash matches single dash name",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "order preserved",
			args:    []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			allowed: []string{"c", "config"},
			want:    []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional", "-", "--"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "flag followed by another flag",
			args:    []string{"-t", "-a", "host:1"},
			allowed: []string{"-t", "-a"},
			want:    []string{"-t", "-a", "host:1"},
		},
		{
			name:    "equals form does not consume next arg",
			args:    []string{"-a=host:1", "stray"},
			allowed: []string{"-a"},
			want:    []string{"-a=host:1"},
		},
		{
			name:    "empty input",
			args:    nil,
			allowed: []string{"-a"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-a", "x", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"--config=b.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-d", "memory"}))
	assert.Equal(t, "", ConfigPath([]string{"-c"}), "missing value is tolerated")
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	t.Setenv(ConfigEnv, "env.json")

	os.Args = []string{"bin", "-config", "flag.json"}
	assert.Equal(t, "flag.json", JsonConfigFlags())

	os.Args = []string{"bin"}
	assert.Equal(t, "env.json", JsonConfigFlags())

	t.Setenv(ConfigEnv, "")
	assert.Equal(t, "", JsonConfigFlags())
}
