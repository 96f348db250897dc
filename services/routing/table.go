package routing

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry holds the routing metadata for one selectable model.
// CredentialEnv is an indirection: the name of the environment variable
// holding the provider credential, never the credential itself.
type Entry struct {
	ModelID       string `yaml:"model_id" json:"model_id"`
	Provider      string `yaml:"provider" json:"provider"`
	Endpoint      string `yaml:"endpoint" json:"endpoint"`
	CredentialEnv string `yaml:"credential_env" json:"-"`
	UpstreamModel string `yaml:"upstream_model" json:"upstream_model"`
}

// Table maps client-visible model identifiers to routing entries.
// It is built once at startup and read-only afterwards.
type Table struct {
	entries map[string]Entry
	order   []string
}

type routesFile struct {
	Routes []Entry `yaml:"routes"`
}

// NewTable builds a table from the given entries. Entries with an empty
// model identifier, endpoint, credential reference, or upstream model are
// rejected; duplicate model identifiers are rejected.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		e.ModelID = strings.TrimSpace(e.ModelID)
		e.Endpoint = strings.TrimSpace(e.Endpoint)
		e.CredentialEnv = strings.TrimSpace(e.CredentialEnv)
		e.UpstreamModel = strings.TrimSpace(e.UpstreamModel)

		if e.ModelID == "" {
			return nil, fmt.Errorf("route entry with empty model_id")
		}
		if e.Endpoint == "" || e.CredentialEnv == "" || e.UpstreamModel == "" {
			return nil, fmt.Errorf("route entry %q is incomplete", e.ModelID)
		}
		if !strings.HasPrefix(e.Endpoint, "http://") && !strings.HasPrefix(e.Endpoint, "https://") {
			return nil, fmt.Errorf("route entry %q has a non-absolute endpoint %q", e.ModelID, e.Endpoint)
		}
		if _, exists := t.entries[e.ModelID]; exists {
			return nil, fmt.Errorf("duplicate route entry for model %q", e.ModelID)
		}
		if e.Provider == "" {
			e.Provider = "other"
		}

		t.entries[e.ModelID] = e
		t.order = append(t.order, e.ModelID)
	}
	return t, nil
}

// LoadTable builds a table from a YAML routes file. An empty path falls
// back to the compiled-in default entries.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return NewTable(DefaultEntries())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file %q: %w", path, err)
	}

	var cfg routesFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse routes file %q: %w", path, err)
	}
	if len(cfg.Routes) == 0 {
		return nil, fmt.Errorf("routes file %q defines no routes", path)
	}

	return NewTable(cfg.Routes)
}

// Lookup resolves a model identifier to its routing entry. A miss is a
// normal outcome; the caller decides how to respond.
func (t *Table) Lookup(modelID string) (Entry, bool) {
	e, ok := t.entries[modelID]
	return e, ok
}

// Len returns the number of configured routes.
func (t *Table) Len() int {
	return len(t.entries)
}

// ModelGroup is one provider group for the UI model dropdown.
type ModelGroup struct {
	Provider string  `json:"provider"`
	Models   []Entry `json:"models"`
}

// Groups returns all entries grouped by provider label, in declaration
// order within each group, with groups sorted by provider name.
func (t *Table) Groups() []ModelGroup {
	byProvider := make(map[string][]Entry)
	for _, id := range t.order {
		e := t.entries[id]
		byProvider[e.Provider] = append(byProvider[e.Provider], e)
	}

	providers := make([]string, 0, len(byProvider))
	for p := range byProvider {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	groups := make([]ModelGroup, 0, len(providers))
	for _, p := range providers {
		groups = append(groups, ModelGroup{Provider: p, Models: byProvider[p]})
	}
	return groups
}

// DefaultEntries returns the compiled-in routing table used when no routes
// file is configured.
func DefaultEntries() []Entry {
	return []Entry{
		{
			ModelID:       "deepseek-v3",
			Provider:      "DeepSeek",
			Endpoint:      "https://api.deepseek.com/chat/completions",
			CredentialEnv: "DEEPSEEK_API_KEY",
			UpstreamModel: "deepseek-chat",
		},
		{
			ModelID:       "deepseek-r1",
			Provider:      "DeepSeek",
			Endpoint:      "https://api.deepseek.com/chat/completions",
			CredentialEnv: "DEEPSEEK_API_KEY",
			UpstreamModel: "deepseek-reasoner",
		},
		{
			ModelID:       "glm-4.6",
			Provider:      "Zhipu",
			Endpoint:      "https://open.bigmodel.cn/api/paas/v4/chat/completions",
			CredentialEnv: "ZHIPU_API_KEY",
			UpstreamModel: "glm-4.6",
		},
		{
			ModelID:       "kimi-k2",
			Provider:      "Moonshot",
			Endpoint:      "https://api.moonshot.cn/v1/chat/completions",
			CredentialEnv: "MOONSHOT_API_KEY",
			UpstreamModel: "kimi-k2-0905-preview",
		},
		{
			ModelID:       "qwen-max",
			Provider:      "Alibaba",
			Endpoint:      "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions",
			CredentialEnv: "DASHSCOPE_API_KEY",
			UpstreamModel: "qwen-max",
		},
	}
}
