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
			name:    "separate value form",
			args:    []string{"-d", "/archives", "-u", "Administrator"},
			allowed: []string{"-d"},
			want:    []string{"-d", "/archives"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-d=/archives"},
			allowed: []string{"-d"},
			want:    []string{"-d=/archives"},
		},
		{
			name:    "boolean flag without value",
			args:    []string{"-A", "-d", "/archives"},
			allowed: []string{"-A"},
			want:    []string{"-A"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-d", "/archives"},
			allowed: []string{"-u"},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-c", "conf.json", "-d", "/archives"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"testbin", "-d", "/archives"}
	assert.Equal(t, "", JsonConfigFlags())
}

func TestCommand(t *testing.T) {
	assert.Equal(t, "history", Command([]string{"history", "-H", "state.db"}))
	assert.Equal(t, "", Command([]string{"-d", "/archives"}))
	assert.Equal(t, "", Command(nil))
}
