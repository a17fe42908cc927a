package backlog

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/epicroadmap/pkg/errors"
)

func level(name string, rank int, types ...string) Level {
	l := Level{Name: name, Rank: rank}
	for _, t := range types {
		l.WorkItemTypes = append(l.WorkItemTypes, WorkItemType{Name: t})
	}
	return l
}

func TestRankMapFromConfig(t *testing.T) {
	cfg := &Configuration{
		RequirementBacklog: level("Stories", 2, "User Story", "Bug"),
		PortfolioBacklogs: []Level{
			level("Features", 1, "Feature"),
			level("Epics", 0, "Epic"),
		},
	}

	got := RankMapFromConfig(cfg)
	want := RankMap{"User Story": 2, "Bug": 2, "Feature": 1, "Epic": 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankMapFromConfig() = %v, want %v", got, want)
	}
}

func TestRankMapFromConfig_LastLevelWins(t *testing.T) {
	cfg := &Configuration{
		RequirementBacklog: level("Stories", 2, "Bug"),
		PortfolioBacklogs: []Level{
			level("Features", 1, "Bug"),
			level("Epics", 0, "Epic", "Bug"),
		},
	}

	if r, _ := RankMapFromConfig(cfg).Rank("Bug"); r != 0 {
		t.Errorf("Rank(Bug) = %d, want 0 (last level wins)", r)
	}
}

func TestRankMapFromConfig_Nil(t *testing.T) {
	got := RankMapFromConfig(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("RankMapFromConfig(nil) = %#v, want empty map", got)
	}
}

func TestRankMapFromConfig_DoesNotShareState(t *testing.T) {
	cfg := Default()
	a := cfg.RankMap()
	a["Epic"] = 99
	if r, _ := cfg.RankMap().Rank("Epic"); r != 0 {
		t.Errorf("Rank(Epic) = %d after mutating an earlier map, want 0", r)
	}
}

func TestRankMap_Rank(t *testing.T) {
	m := RankMap{"Epic": 0}

	if r, ok := m.Rank("Epic"); !ok || r != 0 {
		t.Errorf("Rank(Epic) = %d, %v, want 0, true", r, ok)
	}
	if _, ok := m.Rank("Task"); ok {
		t.Error("Rank(Task) should be absent")
	}

	var empty RankMap
	if _, ok := empty.Rank("Epic"); ok {
		t.Error("nil RankMap should rank nothing")
	}
}

func TestRankMap_Types(t *testing.T) {
	got := Default().RankMap().Types()
	want := []string{"Epic", "Feature", "Bug", "User Story"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Types() = %v, want %v", got, want)
	}
}

func TestLevels(t *testing.T) {
	cfg := Default()
	levels := cfg.Levels()

	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}
	if !reflect.DeepEqual(names, []string{"Stories", "Features", "Epics"}) {
		t.Errorf("Levels() names = %v", names)
	}

	var nilCfg *Configuration
	if nilCfg.Levels() != nil {
		t.Error("nil Configuration should have no levels")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Configuration
		wantErr bool
	}{
		{"default", Default(), false},
		{"nil", nil, false},
		{"empty", &Configuration{}, false},
		{
			name: "level without types",
			cfg: &Configuration{
				RequirementBacklog: level("Stories", 2, "User Story"),
				PortfolioBacklogs:  []Level{level("Features", 1)},
			},
			wantErr: true,
		},
		{
			name: "declared requirement level without types",
			cfg: &Configuration{
				RequirementBacklog: Level{Name: "Stories", Rank: 2},
			},
			wantErr: true,
		},
		{
			name: "portfolio level without types",
			cfg: &Configuration{
				PortfolioBacklogs: []Level{level("Epics", 0)},
			},
			wantErr: true,
		},
		{
			name: "blank type name",
			cfg: &Configuration{
				RequirementBacklog: level("Stories", 2, " "),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidBacklog) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidBacklog)
			}
		})
	}
}

const tomlConfig = `
[requirement_backlog]
name = "Stories"
rank = 2
work_item_types = [{ name = "User Story" }, { name = "Bug" }]

[[portfolio_backlogs]]
name = "Features"
rank = 1
work_item_types = [{ name = "Feature" }]

[[portfolio_backlogs]]
name = "Epics"
rank = 0
work_item_types = [{ name = "Epic" }]
`

const yamlConfig = `
requirementBacklog:
  name: Stories
  rank: 2
  workItemTypes:
    - name: User Story
    - name: Bug
portfolioBacklogs:
  - name: Features
    rank: 1
    workItemTypes:
      - name: Feature
  - name: Epics
    rank: 0
    workItemTypes:
      - name: Epic
`

const jsonConfig = `{
  "requirementBacklog": {"name": "Stories", "rank": 2, "workItemTypes": [{"name": "User Story"}, {"name": "Bug"}]},
  "portfolioBacklogs": [
    {"name": "Features", "rank": 1, "workItemTypes": [{"name": "Feature"}]},
    {"name": "Epics", "rank": 0, "workItemTypes": [{"name": "Epic"}]}
  ]
}`

func TestDecode(t *testing.T) {
	want := RankMap{"User Story": 2, "Bug": 2, "Feature": 1, "Epic": 0}

	tests := []struct {
		format string
		input  string
	}{
		{FormatTOML, tomlConfig},
		{FormatYAML, yamlConfig},
		{FormatJSON, jsonConfig},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got := cfg.RankMap(); !reflect.DeepEqual(got, want) {
				t.Errorf("RankMap() = %v, want %v", got, want)
			}
			if len(cfg.PortfolioBacklogs) != 2 || cfg.PortfolioBacklogs[1].Name != "Epics" {
				t.Errorf("PortfolioBacklogs = %+v", cfg.PortfolioBacklogs)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   errors.Code
	}{
		{"unknown format", "xml", "<x/>", errors.ErrCodeInvalidFormat},
		{"bad json", FormatJSON, "{", errors.ErrCodeInvalidBacklog},
		{"unknown json field", FormatJSON, `{"levels": []}`, errors.ErrCodeInvalidBacklog},
		{"requirement level without types", FormatJSON, `{"requirementBacklog": {"name": "Stories", "rank": 2}}`, errors.ErrCodeInvalidBacklog},
		{"bad toml", FormatTOML, "[requirement_backlog", errors.ErrCodeInvalidBacklog},
		{"invalid level", FormatYAML, "portfolioBacklogs:\n  - name: Features\n    rank: 1\n", errors.ErrCodeInvalidBacklog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"backlog.toml", FormatTOML, false},
		{"backlog.YAML", FormatYAML, false},
		{"conf/backlog.yml", FormatYAML, false},
		{"backlog.json", FormatJSON, false},
		{"backlog.ini", "", true},
		{"backlog", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backlog.toml")
	if err := os.WriteFile(path, []byte(tomlConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RequirementBacklog.Name != "Stories" {
		t.Errorf("RequirementBacklog.Name = %q, want Stories", cfg.RequirementBacklog.Name)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}
