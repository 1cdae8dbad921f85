package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQuery(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr bool
	}{
		{"argument", []string{"{ health }"}, "ignored", "{ health }", false},
		{"stdin when missing", nil, "  { summary { authors } }\n", "{ summary { authors } }", false},
		{"stdin on dash", []string{"-"}, "{ years { year } }", "{ years { year } }", false},
		{"empty stdin", nil, " \n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readQuery(tt.args, strings.NewReader(tt.stdin))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommonFlagsOverrideConfig(t *testing.T) {
	t.Setenv("COAUTHOR_OUTPUT_DIR", "")
	common := commonFlags{outputDir: t.TempDir(), logLevel: "debug", logFormat: "json"}

	cfg, logger, err := common.load(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Equal(t, common.outputDir, cfg.Output.Dir)
	assert.Equal(t, "json", cfg.Logging.Format)

	common.logFormat = "xml"
	_, _, err = common.load(nil)
	assert.Error(t, err)
}
