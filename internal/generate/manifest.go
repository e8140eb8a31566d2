package generate

import (
	"fmt"
	"strings"

	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
)

// manifest is the fixed per-framework project scaffold: package manifest
// content, dependency list and the canonical install/dev/build triple.
type manifest struct {
	configPath    string
	configContent func(s *spec.Specification) string
	dependencies  []Dependency
	commands      Commands
}

// manifestFor is a total function over the framework set; like template
// dispatch, an unmapped framework falls back to the generic web manifest.
func manifestFor(fw target.Framework) manifest {
	switch fw {
	case target.FrameworkReact:
		return npmManifest([]Dependency{
			{Name: "react", Version: "^18.3.0"},
			{Name: "react-dom", Version: "^18.3.0"},
			{Name: "react-router-dom", Version: "^6.26.0"},
			{Name: "typescript", Version: "^5.5.0", Dev: true},
			{Name: "vite", Version: "^5.4.0", Dev: true},
		})
	case target.FrameworkVue:
		return npmManifest([]Dependency{
			{Name: "vue", Version: "^3.4.0"},
			{Name: "vue-router", Version: "^4.4.0"},
			{Name: "typescript", Version: "^5.5.0", Dev: true},
			{Name: "vite", Version: "^5.4.0", Dev: true},
		})
	case target.FrameworkAngular:
		return manifest{
			configPath:    "package.json",
			configContent: packageJSON,
			dependencies: []Dependency{
				{Name: "@angular/core", Version: "^18.1.0"},
				{Name: "@angular/forms", Version: "^18.1.0"},
				{Name: "@angular/router", Version: "^18.1.0"},
				{Name: "typescript", Version: "^5.5.0", Dev: true},
				{Name: "@angular/cli", Version: "^18.1.0", Dev: true},
			},
			commands: Commands{Install: "npm install", Dev: "ng serve", Build: "ng build --configuration production"},
		}
	case target.FrameworkSvelte:
		return manifest{
			configPath:    "package.json",
			configContent: packageJSON,
			dependencies: []Dependency{
				{Name: "svelte", Version: "^4.2.0"},
				{Name: "@sveltejs/kit", Version: "^2.5.0"},
				{Name: "typescript", Version: "^5.5.0", Dev: true},
				{Name: "vite", Version: "^5.4.0", Dev: true},
			},
			commands: Commands{Install: "npm install", Dev: "npm run dev", Build: "vite build"},
		}
	case target.FrameworkSwiftUI:
		return manifest{
			configPath: "Package.swift",
			configContent: func(s *spec.Specification) string {
				return fmt.Sprintf(`// swift-tools-version:5.10
import PackageDescription

let package = Package(
    name: "%s",
    platforms: [.iOS(.v17)],
    targets: [
        .target(name: "App", path: "Sources/App")
    ]
)
`, pascal(s.Name))
			},
			dependencies: []Dependency{},
			commands:     Commands{Install: "swift package resolve", Dev: "xcodebuild -scheme App -destination 'platform=iOS Simulator'", Build: "xcodebuild archive -scheme App"},
		}
	case target.FrameworkJetpack:
		return manifest{
			configPath: "app/build.gradle.kts",
			configContent: func(s *spec.Specification) string {
				return fmt.Sprintf(`// Build configuration for %s
plugins {
    id("com.android.application")
    id("org.jetbrains.kotlin.android")
}

android {
    namespace = "com.app"
    compileSdk = 34
}

dependencies {
    implementation("androidx.compose.material3:material3:1.2.1")
    implementation("androidx.activity:activity-compose:1.9.0")
    implementation("com.squareup.retrofit2:retrofit:2.11.0")
}
`, s.Name)
			},
			dependencies: []Dependency{
				{Name: "androidx.compose.material3:material3", Version: "1.2.1"},
				{Name: "androidx.activity:activity-compose", Version: "1.9.0"},
				{Name: "com.squareup.retrofit2:retrofit", Version: "2.11.0"},
			},
			commands: Commands{Install: "./gradlew dependencies", Dev: "./gradlew installDebug", Build: "./gradlew assembleRelease"},
		}
	case target.FrameworkFlutter:
		return manifest{
			configPath: "pubspec.yaml",
			configContent: func(s *spec.Specification) string {
				return fmt.Sprintf(`name: %s
description: Generated application
environment:
  sdk: ">=3.3.0 <4.0.0"
dependencies:
  flutter:
    sdk: flutter
  http: ^1.2.0
dev_dependencies:
  flutter_test:
    sdk: flutter
`, snake(s.Name))
			},
			dependencies: []Dependency{
				{Name: "http", Version: "^1.2.0"},
				{Name: "flutter_test", Version: "sdk", Dev: true},
			},
			commands: Commands{Install: "flutter pub get", Dev: "flutter run", Build: "flutter build apk --release"},
		}
	case target.FrameworkReactNative:
		return npmManifest([]Dependency{
			{Name: "react", Version: "^18.3.0"},
			{Name: "react-native", Version: "^0.74.0"},
			{Name: "@react-navigation/native", Version: "^6.1.0"},
			{Name: "typescript", Version: "^5.5.0", Dev: true},
		})
	case target.FrameworkExpress:
		return manifest{
			configPath:    "package.json",
			configContent: packageJSON,
			dependencies: []Dependency{
				{Name: "express", Version: "^4.19.0"},
				{Name: "zod", Version: "^3.23.0"},
				{Name: "typescript", Version: "^5.5.0", Dev: true},
				{Name: "tsx", Version: "^4.16.0", Dev: true},
			},
			commands: Commands{Install: "npm install", Dev: "tsx watch src/server.ts", Build: "tsc -p ."},
		}
	case target.FrameworkGin:
		return manifest{
			configPath: "go.mod",
			configContent: func(s *spec.Specification) string {
				return fmt.Sprintf(`module app

go 1.22

require github.com/gin-gonic/gin v1.10.0
// generated for %s
`, s.Name)
			},
			dependencies: []Dependency{
				{Name: "github.com/gin-gonic/gin", Version: "v1.10.0"},
			},
			commands: Commands{Install: "go mod download", Dev: "go run ./cmd/server", Build: "go build -o bin/server ./cmd/server"},
		}
	case target.FrameworkFastAPI:
		return manifest{
			configPath: "requirements.txt",
			configContent: func(s *spec.Specification) string {
				return "fastapi==0.111.0\npydantic==2.8.0\nuvicorn==0.30.0\n"
			},
			dependencies: []Dependency{
				{Name: "fastapi", Version: "0.111.0"},
				{Name: "pydantic", Version: "2.8.0"},
				{Name: "uvicorn", Version: "0.30.0"},
			},
			commands: Commands{Install: "pip install -r requirements.txt", Dev: "uvicorn app.main:app --reload", Build: "python -m build"},
		}
	case target.FrameworkSpring:
		return manifest{
			configPath: "build.gradle.kts",
			configContent: func(s *spec.Specification) string {
				return fmt.Sprintf(`// Build configuration for %s
plugins {
    java
    id("org.springframework.boot") version "3.3.1"
}

dependencies {
    implementation("org.springframework.boot:spring-boot-starter-web")
    implementation("org.springframework.boot:spring-boot-starter-validation")
    implementation("org.springframework.boot:spring-boot-starter-security")
}
`, s.Name)
			},
			dependencies: []Dependency{
				{Name: "org.springframework.boot:spring-boot-starter-web", Version: "3.3.1"},
				{Name: "org.springframework.boot:spring-boot-starter-validation", Version: "3.3.1"},
				{Name: "org.springframework.boot:spring-boot-starter-security", Version: "3.3.1"},
			},
			commands: Commands{Install: "./gradlew dependencies", Dev: "./gradlew bootRun", Build: "./gradlew bootJar"},
		}
	default:
		return npmManifest([]Dependency{
			{Name: "typescript", Version: "^5.5.0", Dev: true},
			{Name: "vite", Version: "^5.4.0", Dev: true},
		})
	}
}

func npmManifest(deps []Dependency) manifest {
	return manifest{
		configPath:    "package.json",
		configContent: packageJSON,
		dependencies:  deps,
		commands:      Commands{Install: "npm install", Dev: "npm run dev", Build: "npm run build"},
	}
}

// packageJSON renders a minimal npm manifest; the dependency block is
// filled in by the generator from the manifest's dependency list.
func packageJSON(s *spec.Specification) string {
	return fmt.Sprintf(`{
  "name": "%s",
  "version": "%s",
  "private": true,
  "scripts": {
    "dev": "vite",
    "build": "vite build"
  }
}
`, kebab(s.Name), orDefault(s.Version, "0.1.0"))
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// readme renders the generated project's documentation artifact.
func readme(s *spec.Specification, t target.Target, cmds Commands) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	fmt.Fprintf(&b, "Generated %s application (%s, %s).\n\n", t.Platform, t.Framework, t.Language)
	fmt.Fprintf(&b, "## Commands\n\n")
	fmt.Fprintf(&b, "- Install: `%s`\n", cmds.Install)
	fmt.Fprintf(&b, "- Develop: `%s`\n", cmds.Dev)
	fmt.Fprintf(&b, "- Build: `%s`\n\n", cmds.Build)
	if len(s.Entities) > 0 {
		fmt.Fprintf(&b, "## Entities\n\n")
		for _, e := range s.Entities {
			fmt.Fprintf(&b, "- %s (%d fields)\n", e.Name, len(e.Fields))
		}
		b.WriteString("\n")
	}
	if len(s.Flows) > 0 {
		fmt.Fprintf(&b, "## Flows\n\n")
		for _, f := range s.Flows {
			fmt.Fprintf(&b, "- %s (%d steps)\n", f.Name, len(f.Steps))
		}
	}
	return b.String()
}
