package deployservice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v2"
)

const (
	ProviderVercel = "vercel"
	ProviderRender = "render"
)

var ErrUnsupportedProvider = errors.New("provider must be 'vercel' or 'render'")

// Bundle is everything a user needs to push the generated app to a hosting
// provider: the resolved config, rendered files keyed by filename, and the
// artifact passed through untouched.
type Bundle struct {
	Config        BundleConfig      `json:"config"`
	Files         map[string]string `json:"files"`
	GeneratedCode string            `json:"generatedCode,omitempty"`
}

type BundleConfig struct {
	Name            string        `json:"name"`
	Framework       string        `json:"framework"`
	BuildCommand    string        `json:"buildCommand"`
	OutputDirectory string        `json:"outputDirectory"`
	InstallCommand  string        `json:"installCommand"`
	NodeVersion     string        `json:"nodeVersion"`
	Vercel          *VercelConfig `json:"vercel,omitempty"`
	Render          *RenderConfig `json:"render,omitempty"`
	Instructions    []string      `json:"instructions"`
}

type VercelConfig struct {
	Version int           `json:"version"`
	Builds  []VercelBuild `json:"builds"`
}

type VercelBuild struct {
	Src    string            `json:"src"`
	Use    string            `json:"use"`
	Config VercelBuildConfig `json:"config"`
}

type VercelBuildConfig struct {
	DistDir string `json:"distDir"`
}

type RenderConfig struct {
	Services []RenderService `json:"services" yaml:"services"`
}

type RenderService struct {
	Type              string `json:"type" yaml:"type"`
	Name              string `json:"name" yaml:"name"`
	Env               string `json:"env" yaml:"env"`
	BuildCommand      string `json:"buildCommand" yaml:"buildCommand"`
	StaticPublishPath string `json:"staticPublishPath" yaml:"staticPublishPath"`
}

// slugReplacer only substitutes spaces and underscores; other punctuation
// passes through unchanged.
var slugReplacer = strings.NewReplacer(" ", "-", "_", "-")

func Slugify(name string) string {
	return slugReplacer.Replace(strings.ToLower(name))
}

// BuildBundle assembles the deployment bundle for one provider. It is pure:
// identical inputs yield byte-identical bundles.
func BuildBundle(appName, provider, generatedCode string) (bundle Bundle, err error) {
	provider = strings.ToLower(provider)
	if provider != ProviderVercel && provider != ProviderRender {
		err = fmt.Errorf("%w: got %q", ErrUnsupportedProvider, provider)
		return
	}

	safeName := Slugify(appName)

	conf := BundleConfig{
		Name:            safeName,
		Framework:       "react",
		BuildCommand:    "npm run build",
		OutputDirectory: "dist",
		InstallCommand:  "npm install",
		NodeVersion:     "18.x",
	}

	files := map[string]string{
		"README.md": renderReadme(appName, provider),
	}

	switch provider {
	case ProviderVercel:
		conf.Vercel = &VercelConfig{
			Version: 2,
			Builds: []VercelBuild{
				{
					Src:    "package.json",
					Use:    "@vercel/static-build",
					Config: VercelBuildConfig{DistDir: "dist"},
				},
			},
		}
		conf.Instructions = []string{
			"1. Install Vercel CLI: npm i -g vercel",
			"2. Login: vercel login",
			"3. Deploy: vercel --prod",
			"4. Set environment variables in Vercel dashboard if needed",
		}

		var descriptor []byte
		descriptor, err = json.MarshalIndent(conf.Vercel, "", "  ")
		if err != nil {
			err = fmt.Errorf("cannot marshal vercel.json: %w", err)
			return
		}

		files["vercel.json"] = string(descriptor)

	case ProviderRender:
		conf.Render = &RenderConfig{
			Services: []RenderService{
				{
					Type:              "web",
					Name:              safeName,
					Env:               "static",
					BuildCommand:      "npm install && npm run build",
					StaticPublishPath: "./dist",
				},
			},
		}
		conf.Instructions = []string{
			"1. Go to render.com and create a new Static Site",
			"2. Connect your GitHub repository",
			"3. Set build command: npm run build",
			"4. Set publish directory: dist",
			"5. Deploy",
		}

		var descriptor []byte
		descriptor, err = yaml.Marshal(conf.Render)
		if err != nil {
			err = fmt.Errorf("cannot marshal render.yaml: %w", err)
			return
		}

		files["render.yaml"] = string(descriptor)
	}

	bundle = Bundle{
		Config:        conf,
		Files:         files,
		GeneratedCode: generatedCode,
	}
	return
}

func renderReadme(appName, provider string) string {
	title := strings.ToUpper(provider[:1]) + provider[1:]

	return fmt.Sprintf(`# %s

## Deployment Instructions (%s)

This application is ready to be deployed to %s.

### Prerequisites
- Node.js 18+
- npm or yarn
- %s account

### Local Development
`+"```bash"+`
npm install
npm run dev
`+"```"+`

### Production Build
`+"```bash"+`
npm run build
`+"```"+`

### Deploy to %s
Follow the instructions in the deployment bundle.

---
Built with AppForge
`, appName, title, title, title, title)
}
