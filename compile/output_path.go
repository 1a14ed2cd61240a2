package compile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"gsc/config"
	"gsc/state"
)

// Values is a struct that holds variables we make available for template
// expansion
type Values struct {
	Context  string
	Theme    string
	Artifact string
	RunID    string
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// themeName is theme file name without extension, made safe for use in file
// names.
func themeName(theme string) string {
	name := strings.TrimSuffix(filepath.Base(theme), filepath.Ext(theme))
	if s := slug.Make(name); s != "" {
		return s
	}
	return config.CleanFileName(name)
}

// buildOutputPath returns file name in dst for the artifact. When template
// expansion fails or produces nothing artifact name is used as is.
func buildOutputPath(dst, theme, artifact string, env *state.LocalEnv) string {
	name := artifact
	if field := env.Cfg.Output.NameTemplate; field != "" {
		expanded, err := expandTemplate(config.NameTemplateFieldName, field, Values{
			Theme:    themeName(theme),
			Artifact: artifact,
			RunID:    env.RunID.String(),
		})
		switch {
		case err != nil:
			env.Logger().Warn("Unable to prepare output filename", zap.String("artifact", artifact), zap.Error(err))
		case strings.TrimSpace(expanded) != "":
			name = expanded
		}
	}
	// template may not introduce directories
	return filepath.Join(dst, config.CleanFileName(strings.TrimSpace(name)))
}
