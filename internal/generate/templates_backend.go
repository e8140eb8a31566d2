package generate

import (
	"fmt"
	"strings"

	"github.com/polyforge/polyforge/internal/spec"
)

func goType(t string) string {
	switch t {
	case "uuid", "string", "text":
		return "string"
	case "int":
		return "int64"
	case "float":
		return "float64"
	case "bool":
		return "bool"
	case "datetime":
		return "time.Time"
	case "json":
		return "map[string]any"
	default:
		return "string"
	}
}

func pyType(t string) string {
	switch t {
	case "uuid":
		return "UUID"
	case "string", "text":
		return "str"
	case "int":
		return "int"
	case "float":
		return "float"
	case "bool":
		return "bool"
	case "datetime":
		return "datetime"
	case "json":
		return "dict"
	default:
		return "str"
	}
}

func javaType(t string) string {
	switch t {
	case "uuid":
		return "UUID"
	case "string", "text":
		return "String"
	case "int":
		return "Long"
	case "float":
		return "Double"
	case "bool":
		return "Boolean"
	case "datetime":
		return "Instant"
	case "json":
		return "Map<String, Object>"
	default:
		return "String"
	}
}

func expressTemplates() templateSet {
	return templateSet{
		language: "typescript",
		mapType:  tsType,
		model: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			var fields strings.Builder
			for _, f := range e.Fields {
				opt := "?"
				if f.Required {
					opt = ""
				}
				fields.WriteString(fmt.Sprintf("  %s%s: %s;\n", camel(f.Name), opt, tsType(f.Type)))
			}
			for _, r := range e.Relationships {
				fields.WriteString(fmt.Sprintf("  %s?: %s[];\n", camel(r.Name), pascal(r.Target)))
			}
			content := fmt.Sprintf(`// Model for %s
export interface %s {
%s}

export function validate%s(input: Partial<%s>): string[] {
  const errors: string[] = [];
%s  return errors;
}
`, e.Name, name, fields.String(), name, name, tsRequiredChecks(e))
			return fmt.Sprintf("src/models/%s.ts", name), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`// Handler for %s
import { Router } from 'express';
import { %s, validate%s } from '../models/%s';
import { errorResponse } from '../middleware/errors';

export const %sRouter = Router();

%sRouter.post('/', (req, res) => {
  const errors = validate%s(req.body as Partial<%s>);
  if (errors.length > 0) {
    return errorResponse(res, 422, errors);
  }
  res.status(201).json(req.body);
});

%sRouter.get('/:id', (req, res) => {
  res.json({ id: req.params.id });
});
`, e.Name, name, name, name, camel(e.Name), camel(e.Name), name, name, camel(e.Name))
			return fmt.Sprintf("src/routes/%s.ts", camel(e.Name)), content
		},
		page: func(f spec.Flow) (string, string) {
			name := camel(f.Name)
			auth := ""
			if f.AuthRequired {
				auth = "requireAuth, "
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("  // step %d: %s (%s)\n", i+1, s.Name, s.Action))
			}
			content := fmt.Sprintf(`// Route for flow %s (trigger: %s)
import { Router } from 'express';
import { requireAuth } from '../middleware/auth';

export const %sRouter = Router();

%sRouter.post('/%s', %sasync (req, res) => {
%s  res.json({ flow: '%s', status: 'completed' });
});
`, f.Name, f.Trigger, name, name, kebab(f.Name), auth, steps.String(), kebab(f.Name))
			return fmt.Sprintf("src/routes/flows/%s.ts", name), content
		},
		service: func(c spec.Component) (string, string) {
			name := camel(c.Name)
			content := fmt.Sprintf(`// Service for component %s
// Responsibility: %s
export class %sService {
  async execute<T>(operation: string, payload: unknown): Promise<T> {
    // Dispatch into the %s component
    return { operation, payload } as T;
  }
}
`, c.Name, c.Responsibility, pascal(c.Name), c.Name)
			return fmt.Sprintf("src/services/%sService.ts", name), content
		},
	}
}

func ginTemplates() templateSet {
	return templateSet{
		language: "go",
		mapType:  goType,
		model: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			var fields strings.Builder
			needsTime := false
			for _, f := range e.Fields {
				gt := goType(f.Type)
				if gt == "time.Time" {
					needsTime = true
				}
				tag := fmt.Sprintf("`json:\"%s\"`", snake(f.Name))
				if !f.Required {
					tag = fmt.Sprintf("`json:\"%s,omitempty\"`", snake(f.Name))
				}
				fields.WriteString(fmt.Sprintf("\t%s %s %s\n", pascal(f.Name), gt, tag))
			}
			for _, r := range e.Relationships {
				fields.WriteString(fmt.Sprintf("\t%s []%s `json:\"%s,omitempty\"`\n",
					pascal(r.Name), pascal(r.Target), snake(r.Name)))
			}
			imports := ""
			if needsTime {
				imports = "\nimport \"time\"\n"
			}
			content := fmt.Sprintf(`// Model for %s
package models
%s
type %s struct {
%s}

func (m %s) Validate() []string {
	var errs []string
%s	return errs
}
`, e.Name, imports, name, fields.String(), name, goRequiredChecks(e))
			return fmt.Sprintf("internal/models/%s.go", snake(e.Name)), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`// Handler for %s
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"app/internal/models"
)

func Register%sRoutes(r *gin.RouterGroup) {
	r.POST("/%s", create%s)
	r.GET("/%s/:id", get%s)
}

func create%s(c *gin.Context) {
	var m models.%s
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}
	if errs := m.Validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusCreated, m)
}

func get%s(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}
`, e.Name, name, kebab(e.Name), name, kebab(e.Name), name, name, name, name)
			return fmt.Sprintf("internal/handlers/%s.go", snake(e.Name)), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			auth := ""
			if f.AuthRequired {
				auth = "middleware.RequireAuth(), "
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("\t// step %d: %s (%s)\n", i+1, s.Name, s.Action))
			}
			content := fmt.Sprintf(`// Route for flow %s (trigger: %s)
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"app/internal/middleware"
)

func Register%sFlow(r *gin.RouterGroup) {
	r.POST("/%s", %srun%s)
}

func run%s(c *gin.Context) {
%s	c.JSON(http.StatusOK, gin.H{"flow": "%s", "status": "completed"})
}
`, f.Name, f.Trigger, name, kebab(f.Name), auth, name, name, steps.String(), kebab(f.Name))
			return fmt.Sprintf("internal/routes/%s.go", snake(f.Name)), content
		},
		service: func(c spec.Component) (string, string) {
			name := pascal(c.Name)
			content := fmt.Sprintf(`// Service for component %s
package services

import "context"

// %sService owns: %s
type %sService struct{}

func New%sService() *%sService {
	return &%sService{}
}

func (s *%sService) Execute(ctx context.Context, operation string, payload map[string]any) (map[string]any, error) {
	return map[string]any{"operation": operation}, nil
}
`, c.Name, name, c.Responsibility, name, name, name, name, name)
			return fmt.Sprintf("internal/services/%s.go", snake(c.Name)), content
		},
	}
}

func fastAPITemplates() templateSet {
	return templateSet{
		language: "python",
		mapType:  pyType,
		model: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			var fields strings.Builder
			for _, f := range e.Fields {
				pt := pyType(f.Type)
				if f.Required {
					fields.WriteString(fmt.Sprintf("    %s: %s\n", snake(f.Name), pt))
				} else {
					fields.WriteString(fmt.Sprintf("    %s: %s | None = None\n", snake(f.Name), pt))
				}
			}
			for _, r := range e.Relationships {
				fields.WriteString(fmt.Sprintf("    %s: list[\"%s\"] = []\n", snake(r.Name), pascal(r.Target)))
			}
			content := fmt.Sprintf(`"""Model for %s."""
from datetime import datetime
from uuid import UUID

from pydantic import BaseModel


class %s(BaseModel):
%s`, e.Name, name, fields.String())
			return fmt.Sprintf("app/models/%s.py", snake(e.Name)), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`"""Router for %s."""
from fastapi import APIRouter, HTTPException

from app.models.%s import %s

router = APIRouter(prefix="/%s", tags=["%s"])


@router.post("/", status_code=201)
async def create_%s(payload: %s) -> %s:
    return payload


@router.get("/{item_id}")
async def get_%s(item_id: str) -> dict:
    return {"id": item_id}
`, e.Name, snake(e.Name), name, kebab(e.Name), snake(e.Name), snake(e.Name), name, name, snake(e.Name))
			return fmt.Sprintf("app/routers/%s.py", snake(e.Name)), content
		},
		page: func(f spec.Flow) (string, string) {
			auth := ""
			if f.AuthRequired {
				auth = ", dependencies=[Depends(require_auth)]"
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("    # step %d: %s (%s)\n", i+1, s.Name, s.Action))
			}
			content := fmt.Sprintf(`"""Route for flow %s (trigger: %s)."""
from fastapi import APIRouter, Depends

from app.auth import require_auth

router = APIRouter()


@router.post("/%s"%s)
async def run_%s() -> dict:
%s    return {"flow": "%s", "status": "completed"}
`, f.Name, f.Trigger, kebab(f.Name), auth, snake(f.Name), steps.String(), kebab(f.Name))
			return fmt.Sprintf("app/flows/%s.py", snake(f.Name)), content
		},
		service: func(c spec.Component) (string, string) {
			name := pascal(c.Name)
			content := fmt.Sprintf(`"""Service for component %s.

Responsibility: %s
"""


class %sService:
    async def execute(self, operation: str, payload: dict) -> dict:
        return {"operation": operation}
`, c.Name, c.Responsibility, name)
			return fmt.Sprintf("app/services/%s_service.py", snake(c.Name)), content
		},
	}
}

func springTemplates() templateSet {
	return templateSet{
		language: "java",
		mapType:  javaType,
		model: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			var fields []string
			for _, f := range e.Fields {
				ann := ""
				if f.Required {
					ann = "@NotNull "
				}
				fields = append(fields, fmt.Sprintf("        %s%s %s", ann, javaType(f.Type), camel(f.Name)))
			}
			for _, r := range e.Relationships {
				fields = append(fields, fmt.Sprintf("        List<%s> %s", pascal(r.Target), camel(r.Name)))
			}
			content := fmt.Sprintf(`// Model for %s
package com.app.model;

import jakarta.validation.constraints.NotNull;

import java.time.Instant;
import java.util.List;
import java.util.Map;
import java.util.UUID;

public record %s(
%s) {
}
`, e.Name, name, strings.Join(fields, ",\n")+"\n")
			return fmt.Sprintf("src/main/java/com/app/model/%s.java", name), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`// Controller for %s
package com.app.web;

import com.app.model.%s;
import jakarta.validation.Valid;
import org.springframework.http.HttpStatus;
import org.springframework.web.bind.annotation.*;

@RestController
@RequestMapping("/%s")
public class %sController {

    @PostMapping
    @ResponseStatus(HttpStatus.CREATED)
    public %s create(@Valid @RequestBody %s payload) {
        return payload;
    }

    @GetMapping("/{id}")
    public String get(@PathVariable String id) {
        return id;
    }
}
`, e.Name, name, kebab(e.Name), name, name, name)
			return fmt.Sprintf("src/main/java/com/app/web/%sController.java", name), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			auth := ""
			if f.AuthRequired {
				auth = "    @PreAuthorize(\"isAuthenticated()\")\n"
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("        // step %d: %s (%s)\n", i+1, s.Name, s.Action))
			}
			content := fmt.Sprintf(`// Flow endpoint for %s (trigger: %s)
package com.app.web;

import org.springframework.security.access.prepost.PreAuthorize;
import org.springframework.web.bind.annotation.*;

import java.util.Map;

@RestController
public class %sFlowController {

%s    @PostMapping("/%s")
    public Map<String, String> run() {
%s        return Map.of("flow", "%s", "status", "completed");
    }
}
`, f.Name, f.Trigger, name, auth, kebab(f.Name), steps.String(), kebab(f.Name))
			return fmt.Sprintf("src/main/java/com/app/web/%sFlowController.java", name), content
		},
		service: func(c spec.Component) (string, string) {
			name := pascal(c.Name)
			content := fmt.Sprintf(`// Service for component %s
package com.app.service;

import org.springframework.stereotype.Service;

import java.util.Map;

/**
 * Responsibility: %s
 */
@Service
public class %sService {

    public Map<String, Object> execute(String operation, Map<String, Object> payload) {
        return Map.of("operation", operation);
    }
}
`, c.Name, c.Responsibility, name)
			return fmt.Sprintf("src/main/java/com/app/service/%sService.java", name), content
		},
	}
}

func goRequiredChecks(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		if !f.Required {
			continue
		}
		switch f.Type {
		case "string", "text", "uuid":
			b.WriteString(fmt.Sprintf("\tif m.%s == \"\" {\n\t\terrs = append(errs, \"%s is required\")\n\t}\n",
				pascal(f.Name), snake(f.Name)))
		}
	}
	return b.String()
}
