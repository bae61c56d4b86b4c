// Package client es el consumidor Go del API de ReelVault: un HTTP
// client que maneja el bearer token, preferencias persistidas y la
// búsqueda con debounce que alimenta sugerencias y grilla de resultados.
package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Temas soportados por la UI
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Prefs es el equivalente del local storage del browser: token y tema,
// persistidos en un archivo JSON.
type Prefs struct {
	mu   sync.Mutex
	path string

	data prefsData
}

type prefsData struct {
	Token string `json:"token,omitempty"`
	Theme string `json:"theme,omitempty"`
}

// LoadPrefs lee las preferencias de `path`; si no existe arranca vacío.
func LoadPrefs(path string) (*Prefs, error) {
	p := &Prefs{path: path}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &p.data); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Prefs) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.Token
}

func (p *Prefs) SetToken(token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data.Token = token
	return p.save()
}

func (p *Prefs) ClearToken() error {
	return p.SetToken("")
}

// Theme devuelve el tema guardado, con dark como default.
func (p *Prefs) Theme() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data.Theme == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

func (p *Prefs) SetTheme(theme string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data.Theme = theme
	return p.save()
}

func (p *Prefs) save() error {
	b, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(p.path, b, 0o600)
}
