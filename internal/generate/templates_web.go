package generate

import (
	"fmt"
	"strings"

	"github.com/polyforge/polyforge/internal/spec"
)

func reactTemplates() templateSet {
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
			content := fmt.Sprintf(`// Component for %s
import { useState } from 'react';
import { %s, validate%s } from '../models/%s';

export interface %sProps {
  value: %s;
  onSave: (next: %s) => void;
}

export function %sCard({ value, onSave }: %sProps) {
  const [draft, setDraft] = useState(value);
  const errors = validate%s(draft);

  return (
    <form
      onSubmit={(event) => {
        event.preventDefault();
        if (errors.length === 0) {
          onSave(draft);
        }
      }}
    >
%s      {errors.map((error) => (
        <p key={error} role="alert">{error}</p>
      ))}
      <button type="submit" disabled={errors.length > 0}>Save</button>
    </form>
  );
}
`, e.Name, name, name, name, name, name, name, name, name, name, reactInputs(e))
			return fmt.Sprintf("src/components/%sCard.tsx", name), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			guard := ""
			if f.AuthRequired {
				guard = "  useRequireAuth();\n"
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("        <li data-step=\"%d\">%s</li>\n", i+1, s.Name))
			}
			content := fmt.Sprintf(`// Page for flow %s (trigger: %s)
import { useRequireAuth } from '../hooks/useRequireAuth';

export default function %sPage() {
%s  return (
    <main>
      <h1>%s</h1>
      <ol>
%s      </ol>
    </main>
  );
}
`, f.Name, f.Trigger, name, guard, f.Name, steps.String())
			return fmt.Sprintf("src/pages/%sPage.tsx", name), content
		},
		service: func(c spec.Component) (string, string) {
			name := camel(c.Name)
			content := fmt.Sprintf(`// Service for component %s
// Responsibility: %s
import { apiClient } from './apiClient';

export const %sService = {
  async call<T>(path: string, body?: unknown): Promise<T> {
    return apiClient.request<T>('%s', path, body);
  },
};
`, c.Name, c.Responsibility, name, kebab(c.Name))
			return fmt.Sprintf("src/services/%sService.ts", name), content
		},
	}
}

func vueTemplates() templateSet {
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
			content := fmt.Sprintf(`<!-- Component for %s -->
<script setup lang="ts">
import { reactive, computed } from 'vue';
import { %s, validate%s } from '../models/%s';

const props = defineProps<{ value: %s }>();
const emit = defineEmits<{ save: [next: %s] }>();

const draft = reactive({ ...props.value });
const errors = computed(() => validate%s(draft));

function submit() {
  if (errors.value.length === 0) {
    emit('save', { ...draft });
  }
}
</script>

<template>
  <form @submit.prevent="submit">
%s    <p v-for="error in errors" :key="error" role="alert">{{ error }}</p>
    <button type="submit" :disabled="errors.length > 0">Save</button>
  </form>
</template>
`, e.Name, name, name, name, name, name, name, vueInputs(e))
			return fmt.Sprintf("src/components/%sCard.vue", name), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			guard := ""
			if f.AuthRequired {
				guard = "\nconst auth = useAuthGuard();\n"
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("      <li data-step=\"%d\">%s</li>\n", i+1, s.Name))
			}
			content := fmt.Sprintf(`<!-- Page for flow %s (trigger: %s) -->
<script setup lang="ts">
import { useAuthGuard } from '../composables/useAuthGuard';
%s</script>

<template>
  <main>
    <h1>%s</h1>
    <ol>
%s    </ol>
  </main>
</template>
`, f.Name, f.Trigger, guard, f.Name, steps.String())
			return fmt.Sprintf("src/pages/%sPage.vue", name), content
		},
		service: func(c spec.Component) (string, string) {
			name := camel(c.Name)
			content := fmt.Sprintf(`// Service for component %s
// Responsibility: %s
import { apiClient } from './apiClient';

export const %sService = {
  async call<T>(path: string, body?: unknown): Promise<T> {
    return apiClient.request<T>('%s', path, body);
  },
};
`, c.Name, c.Responsibility, name, kebab(c.Name))
			return fmt.Sprintf("src/services/%sService.ts", name), content
		},
	}
}

func angularTemplates() templateSet {
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
`, e.Name, name, fields.String())
			return fmt.Sprintf("src/app/models/%s.model.ts", kebab(e.Name)), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`// Component for %s
import { Component, EventEmitter, Input, Output } from '@angular/core';
import { FormBuilder, Validators } from '@angular/forms';
import { %s } from '../models/%s.model';

@Component({
  selector: 'app-%s-card',
  templateUrl: './%s-card.component.html',
})
export class %sCardComponent {
  @Input() value!: %s;
  @Output() save = new EventEmitter<%s>();

  form = this.fb.group({
%s  });

  constructor(private fb: FormBuilder) {}

  submit(): void {
    if (this.form.valid) {
      this.save.emit(this.form.getRawValue() as %s);
    }
  }
}
`, e.Name, name, kebab(e.Name), kebab(e.Name), kebab(e.Name), name, name, name, angularControls(e), name)
			return fmt.Sprintf("src/app/components/%s-card.component.ts", kebab(e.Name)), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			guards := "[]"
			if f.AuthRequired {
				guards = "[authGuard]"
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("    { order: %d, label: '%s', action: '%s' },\n", i+1, s.Name, s.Action))
			}
			content := fmt.Sprintf(`// Page for flow %s (trigger: %s)
import { Component } from '@angular/core';
import { authGuard } from '../guards/auth.guard';

export const %sRoute = {
  path: '%s',
  component: %sPageComponent,
  canActivate: %s,
};

@Component({
  selector: 'app-%s-page',
  templateUrl: './%s-page.component.html',
})
export class %sPageComponent {
  steps = [
%s  ];
}
`, f.Name, f.Trigger, camel(f.Name), kebab(f.Name), name, guards, kebab(f.Name), kebab(f.Name), name, steps.String())
			return fmt.Sprintf("src/app/pages/%s-page.component.ts", kebab(f.Name)), content
		},
		service: func(c spec.Component) (string, string) {
			name := pascal(c.Name)
			content := fmt.Sprintf(`// Service for component %s
// Responsibility: %s
import { Injectable } from '@angular/core';
import { HttpClient } from '@angular/common/http';
import { Observable } from 'rxjs';

@Injectable({ providedIn: 'root' })
export class %sService {
  private readonly base = '/api/%s';

  constructor(private http: HttpClient) {}

  call<T>(path: string, body?: unknown): Observable<T> {
    return this.http.post<T>(this.base + path, body ?? {});
  }
}
`, c.Name, c.Responsibility, name, kebab(c.Name))
			return fmt.Sprintf("src/app/services/%s.service.ts", kebab(c.Name)), content
		},
	}
}

func svelteTemplates() templateSet {
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
			return fmt.Sprintf("src/lib/models/%s.ts", name), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`<!-- Component for %s -->
<script lang="ts">
  import { type %s, validate%s } from '../models/%s';

  export let value: %s;
  export let onSave: (next: %s) => void;

  let draft = { ...value };
  $: errors = validate%s(draft);

  function submit() {
    if (errors.length === 0) {
      onSave({ ...draft });
    }
  }
</script>

<form on:submit|preventDefault={submit}>
%s  {#each errors as error}
    <p role="alert">{error}</p>
  {/each}
  <button type="submit" disabled={errors.length > 0}>Save</button>
</form>
`, e.Name, name, name, name, name, name, name, svelteInputs(e))
			return fmt.Sprintf("src/lib/components/%sCard.svelte", name), content
		},
		page: func(f spec.Flow) (string, string) {
			guard := ""
			if f.AuthRequired {
				guard = "  requireAuth();\n"
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("    <li data-step=\"%d\">%s</li>\n", i+1, s.Name))
			}
			content := fmt.Sprintf(`<!-- Page for flow %s (trigger: %s) -->
<script lang="ts">
  import { requireAuth } from '$lib/auth';
%s</script>

<main>
  <h1>%s</h1>
  <ol>
%s  </ol>
</main>
`, f.Name, f.Trigger, guard, f.Name, steps.String())
			return fmt.Sprintf("src/routes/%s/+page.svelte", kebab(f.Name)), content
		},
		service: func(c spec.Component) (string, string) {
			name := camel(c.Name)
			content := fmt.Sprintf(`// Service for component %s
// Responsibility: %s
import { apiClient } from './apiClient';

export const %sService = {
  async call<T>(path: string, body?: unknown): Promise<T> {
    return apiClient.request<T>('%s', path, body);
  },
};
`, c.Name, c.Responsibility, name, kebab(c.Name))
			return fmt.Sprintf("src/lib/services/%sService.ts", name), content
		},
	}
}

// genericWebTemplates is the documented default used for any framework
// without a dedicated template set. Plain DOM, no framework assumptions.
func genericWebTemplates() templateSet {
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
			content := fmt.Sprintf(`// Model for %s (generic template)
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
			content := fmt.Sprintf(`// Component for %s (generic template)
import { %s, validate%s } from '../models/%s';

export function render%sCard(root: HTMLElement, value: %s, onSave: (next: %s) => void): void {
  const form = document.createElement('form');
  form.addEventListener('submit', (event) => {
    event.preventDefault();
    const errors = validate%s(value);
    if (errors.length === 0) {
      onSave(value);
    }
  });
  root.appendChild(form);
}
`, e.Name, name, name, name, name, name, name, name)
			return fmt.Sprintf("src/components/%sCard.ts", name), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("    { order: %d, label: '%s', action: '%s' },\n", i+1, s.Name, s.Action))
			}
			content := fmt.Sprintf(`// Page for flow %s (generic template, trigger: %s)
export const %sPage = {
  path: '/%s',
  authRequired: %t,
  steps: [
%s  ],
};
`, f.Name, f.Trigger, camel(f.Name), kebab(f.Name), f.AuthRequired, steps.String())
			return fmt.Sprintf("src/pages/%sPage.ts", name), content
		},
		service: func(c spec.Component) (string, string) {
			name := camel(c.Name)
			content := fmt.Sprintf(`// Service for component %s (generic template)
// Responsibility: %s
export const %sService = {
  async call<T>(path: string, body?: unknown): Promise<T> {
    const response = await fetch('/api/%s' + path, {
      method: 'POST',
      headers: { 'content-type': 'application/json' },
      body: JSON.stringify(body ?? {}),
    });
    if (!response.ok) {
      throw new Error('request failed: ' + response.status);
    }
    return response.json() as Promise<T>;
  },
};
`, c.Name, c.Responsibility, name, kebab(c.Name))
			return fmt.Sprintf("src/services/%sService.ts", name), content
		},
	}
}

func tsRequiredChecks(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		if !f.Required {
			continue
		}
		b.WriteString(fmt.Sprintf("  if (input.%s === undefined || input.%s === null) {\n    errors.push('%s is required');\n  }\n",
			camel(f.Name), camel(f.Name), camel(f.Name)))
	}
	return b.String()
}

func reactInputs(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf(`      <label>
        %s
        <input
          name="%s"
          value={String(draft.%s ?? '')}
          onChange={(event) => setDraft({ ...draft, %s: event.target.value as never })}
        />
      </label>
`, f.Name, camel(f.Name), camel(f.Name), camel(f.Name)))
	}
	return b.String()
}

func vueInputs(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf("    <label>%s <input name=\"%s\" v-model=\"draft.%s\" /></label>\n",
			f.Name, camel(f.Name), camel(f.Name)))
	}
	return b.String()
}

func svelteInputs(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf("  <label>%s <input name=\"%s\" bind:value={draft.%s} /></label>\n",
			f.Name, camel(f.Name), camel(f.Name)))
	}
	return b.String()
}

func angularControls(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		validators := "[]"
		if f.Required {
			validators = "[Validators.required]"
		}
		b.WriteString(fmt.Sprintf("    %s: ['', %s],\n", camel(f.Name), validators))
	}
	return b.String()
}
