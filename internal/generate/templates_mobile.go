package generate

import (
	"fmt"
	"strings"

	"github.com/polyforge/polyforge/internal/spec"
)

func swiftType(t string) string {
	switch t {
	case "uuid":
		return "UUID"
	case "string", "text":
		return "String"
	case "int":
		return "Int"
	case "float":
		return "Double"
	case "bool":
		return "Bool"
	case "datetime":
		return "Date"
	case "json":
		return "[String: String]"
	default:
		return "String"
	}
}

func kotlinType(t string) string {
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
		return "Map<String, String>"
	default:
		return "String"
	}
}

func dartType(t string) string {
	switch t {
	case "uuid", "string", "text":
		return "String"
	case "int":
		return "int"
	case "float":
		return "double"
	case "bool":
		return "bool"
	case "datetime":
		return "DateTime"
	case "json":
		return "Map<String, dynamic>"
	default:
		return "String"
	}
}

func swiftUITemplates() templateSet {
	return templateSet{
		language: "swift",
		mapType:  swiftType,
		model: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			var fields strings.Builder
			for _, f := range e.Fields {
				t := swiftType(f.Type)
				if !f.Required {
					t += "?"
				}
				fields.WriteString(fmt.Sprintf("    var %s: %s\n", camel(f.Name), t))
			}
			for _, r := range e.Relationships {
				fields.WriteString(fmt.Sprintf("    var %s: [%s] = []\n", camel(r.Name), pascal(r.Target)))
			}
			content := fmt.Sprintf(`// Model for %s
import Foundation

struct %s: Codable, Identifiable, Equatable {
%s
    var validationErrors: [String] {
        var errors: [String] = []
%s        return errors
    }
}
`, e.Name, name, fields.String(), swiftRequiredChecks(e))
			return fmt.Sprintf("Sources/App/Models/%s.swift", name), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`// Component for %s
import SwiftUI

struct %sCard: View {
    @State var draft: %s
    let onSave: (%s) -> Void

    var body: some View {
        Form {
%s            ForEach(draft.validationErrors, id: \.self) { error in
                Text(error).foregroundStyle(.red)
            }
            Button("Save") {
                onSave(draft)
            }
            .disabled(!draft.validationErrors.isEmpty)
        }
    }
}
`, e.Name, name, name, name, swiftFields(e))
			return fmt.Sprintf("Sources/App/Views/%sCard.swift", name), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			guard := ""
			if f.AuthRequired {
				guard = "            .requiresAuthentication()\n"
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("                Text(\"%d. %s\")\n", i+1, s.Name))
			}
			content := fmt.Sprintf(`// Screen for flow %s (trigger: %s)
import SwiftUI

struct %sScreen: View {
    var body: some View {
        NavigationStack {
            List {
%s            }
            .navigationTitle("%s")
%s        }
    }
}
`, f.Name, f.Trigger, name, steps.String(), f.Name, guard)
			return fmt.Sprintf("Sources/App/Screens/%sScreen.swift", name), content
		},
		service: func(c spec.Component) (string, string) {
			name := pascal(c.Name)
			content := fmt.Sprintf(`// Service for component %s
// Responsibility: %s
import Foundation

actor %sService {
    private let base = URL(string: "https://api.example.com/%s")!

    func call<T: Decodable>(_ path: String, body: Encodable? = nil) async throws -> T {
        var request = URLRequest(url: base.appending(path: path))
        request.httpMethod = "POST"
        if let body {
            request.httpBody = try JSONEncoder().encode(body)
        }
        let (data, _) = try await URLSession.shared.data(for: request)
        return try JSONDecoder().decode(T.self, from: data)
    }
}
`, c.Name, c.Responsibility, name, kebab(c.Name))
			return fmt.Sprintf("Sources/App/Services/%sService.swift", name), content
		},
	}
}

func jetpackTemplates() templateSet {
	return templateSet{
		language: "kotlin",
		mapType:  kotlinType,
		model: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			var fields []string
			for _, f := range e.Fields {
				t := kotlinType(f.Type)
				if !f.Required {
					t += "? = null"
				}
				fields = append(fields, fmt.Sprintf("    val %s: %s", camel(f.Name), t))
			}
			for _, r := range e.Relationships {
				fields = append(fields, fmt.Sprintf("    val %s: List<%s> = emptyList()", camel(r.Name), pascal(r.Target)))
			}
			content := fmt.Sprintf(`// Model for %s
package com.app.model

import java.time.Instant
import java.util.UUID

data class %s(
%s,
) {
    fun validationErrors(): List<String> = buildList {
%s    }
}
`, e.Name, name, strings.Join(fields, ",\n"), kotlinRequiredChecks(e))
			return fmt.Sprintf("app/src/main/java/com/app/model/%s.kt", name), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`// Component for %s
package com.app.ui

import androidx.compose.foundation.layout.Column
import androidx.compose.material3.Button
import androidx.compose.material3.Text
import androidx.compose.runtime.Composable
import com.app.model.%s

@Composable
fun %sCard(value: %s, onSave: (%s) -> Unit) {
    val errors = value.validationErrors()
    Column {
%s        errors.forEach { error -> Text(error) }
        Button(onClick = { onSave(value) }, enabled = errors.isEmpty()) {
            Text("Save")
        }
    }
}
`, e.Name, name, name, name, name, kotlinFields(e))
			return fmt.Sprintf("app/src/main/java/com/app/ui/%sCard.kt", name), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			auth := ""
			if f.AuthRequired {
				auth = "    RequireAuth()\n"
			}
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("        Text(\"%d. %s\")\n", i+1, s.Name))
			}
			content := fmt.Sprintf(`// Screen for flow %s (trigger: %s)
package com.app.ui

import androidx.compose.foundation.layout.Column
import androidx.compose.material3.Text
import androidx.compose.runtime.Composable

@Composable
fun %sScreen() {
%s    Column {
        Text("%s")
%s    }
}
`, f.Name, f.Trigger, name, auth, f.Name, steps.String())
			return fmt.Sprintf("app/src/main/java/com/app/ui/%sScreen.kt", name), content
		},
		service: func(c spec.Component) (string, string) {
			name := pascal(c.Name)
			content := fmt.Sprintf(`// Service for component %s
// Responsibility: %s
package com.app.service

import retrofit2.http.Body
import retrofit2.http.POST
import retrofit2.http.Path

interface %sService {
    @POST("/%s/{path}")
    suspend fun call(@Path("path") path: String, @Body body: Map<String, Any?>): Map<String, Any?>
}
`, c.Name, c.Responsibility, name, kebab(c.Name))
			return fmt.Sprintf("app/src/main/java/com/app/service/%sService.kt", name), content
		},
	}
}

func flutterTemplates() templateSet {
	return templateSet{
		language: "dart",
		mapType:  dartType,
		model: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			var fields strings.Builder
			var params []string
			for _, f := range e.Fields {
				t := dartType(f.Type)
				req := "required "
				if !f.Required {
					t += "?"
					req = ""
				}
				fields.WriteString(fmt.Sprintf("  final %s %s;\n", t, camel(f.Name)))
				params = append(params, fmt.Sprintf("%sthis.%s", req, camel(f.Name)))
			}
			for _, r := range e.Relationships {
				fields.WriteString(fmt.Sprintf("  final List<%s> %s;\n", pascal(r.Target), camel(r.Name)))
				params = append(params, fmt.Sprintf("this.%s = const []", camel(r.Name)))
			}
			content := fmt.Sprintf(`// Model for %s
class %s {
%s
  const %s({%s});

  List<String> validationErrors() {
    final errors = <String>[];
%s    return errors;
  }
}
`, e.Name, name, fields.String(), name, strings.Join(params, ", "), dartRequiredChecks(e))
			return fmt.Sprintf("lib/models/%s.dart", snake(e.Name)), content
		},
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`// Component for %s
import 'package:flutter/material.dart';
import '../models/%s.dart';

class %sCard extends StatelessWidget {
  const %sCard({super.key, required this.value, required this.onSave});

  final %s value;
  final ValueChanged<%s> onSave;

  @override
  Widget build(BuildContext context) {
    final errors = value.validationErrors();
    return Column(
      children: [
        for (final error in errors) Text(error),
        ElevatedButton(
          onPressed: errors.isEmpty ? () => onSave(value) : null,
          child: const Text('Save'),
        ),
      ],
    );
  }
}
`, e.Name, snake(e.Name), name, name, name, name)
			return fmt.Sprintf("lib/widgets/%s_card.dart", snake(e.Name)), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("          Text('%d. %s'),\n", i+1, s.Name))
			}
			content := fmt.Sprintf(`// Page for flow %s (trigger: %s, auth: %t)
import 'package:flutter/material.dart';

class %sPage extends StatelessWidget {
  const %sPage({super.key});

  @override
  Widget build(BuildContext context) {
    return Scaffold(
      appBar: AppBar(title: const Text('%s')),
      body: Column(
        children: [
%s        ],
      ),
    );
  }
}
`, f.Name, f.Trigger, f.AuthRequired, name, name, f.Name, steps.String())
			return fmt.Sprintf("lib/pages/%s_page.dart", snake(f.Name)), content
		},
		service: func(c spec.Component) (string, string) {
			name := pascal(c.Name)
			content := fmt.Sprintf(`// Service for component %s
// Responsibility: %s
import 'dart:convert';
import 'package:http/http.dart' as http;

class %sService {
  static const base = 'https://api.example.com/%s';

  Future<Map<String, dynamic>> call(String path, [Object? body]) async {
    final response = await http.post(
      Uri.parse('$base$path'),
      headers: {'content-type': 'application/json'},
      body: jsonEncode(body ?? {}),
    );
    if (response.statusCode >= 400) {
      throw Exception('request failed: ${response.statusCode}');
    }
    return jsonDecode(response.body) as Map<String, dynamic>;
  }
}
`, c.Name, c.Responsibility, name, kebab(c.Name))
			return fmt.Sprintf("lib/services/%s_service.dart", snake(c.Name)), content
		},
	}
}

// reactNativeTemplates shares React's model shape but emits native
// primitives and navigation-based pages.
func reactNativeTemplates() templateSet {
	react := reactTemplates()
	return templateSet{
		language: "typescript",
		mapType:  tsType,
		model:    react.model,
		component: func(e spec.Entity) (string, string) {
			name := pascal(e.Name)
			content := fmt.Sprintf(`// Component for %s
import { useState } from 'react';
import { Button, Text, TextInput, View } from 'react-native';
import { %s, validate%s } from '../models/%s';

export function %sCard({ value, onSave }: { value: %s; onSave: (next: %s) => void }) {
  const [draft, setDraft] = useState(value);
  const errors = validate%s(draft);

  return (
    <View>
%s      {errors.map((error) => (
        <Text key={error}>{error}</Text>
      ))}
      <Button title="Save" disabled={errors.length > 0} onPress={() => onSave(draft)} />
    </View>
  );
}
`, e.Name, name, name, name, name, name, name, name, rnInputs(e))
			return fmt.Sprintf("src/components/%sCard.tsx", name), content
		},
		page: func(f spec.Flow) (string, string) {
			name := pascal(f.Name)
			var steps strings.Builder
			for i, s := range f.Steps {
				steps.WriteString(fmt.Sprintf("      <Text>%d. %s</Text>\n", i+1, s.Name))
			}
			content := fmt.Sprintf(`// Screen for flow %s (trigger: %s, auth: %t)
import { Text, View } from 'react-native';

export function %sScreen() {
  return (
    <View>
      <Text>%s</Text>
%s    </View>
  );
}
`, f.Name, f.Trigger, f.AuthRequired, name, f.Name, steps.String())
			return fmt.Sprintf("src/screens/%sScreen.tsx", name), content
		},
		service: react.service,
	}
}

func swiftFields(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf("            LabeledContent(\"%s\") { Text(String(describing: draft.%s)) }\n",
			f.Name, camel(f.Name)))
	}
	return b.String()
}

func swiftRequiredChecks(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		if !f.Required || f.Type != "string" && f.Type != "text" {
			continue
		}
		b.WriteString(fmt.Sprintf("        if %s.isEmpty { errors.append(\"%s is required\") }\n",
			camel(f.Name), camel(f.Name)))
	}
	return b.String()
}

func kotlinFields(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf("        Text(\"%s: ${value.%s}\")\n", f.Name, camel(f.Name)))
	}
	return b.String()
}

func kotlinRequiredChecks(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		if !f.Required || f.Type != "string" && f.Type != "text" {
			continue
		}
		b.WriteString(fmt.Sprintf("        if (%s.isBlank()) add(\"%s is required\")\n",
			camel(f.Name), camel(f.Name)))
	}
	return b.String()
}

func dartRequiredChecks(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		if !f.Required || f.Type != "string" && f.Type != "text" {
			continue
		}
		b.WriteString(fmt.Sprintf("    if (%s.isEmpty) errors.add('%s is required');\n",
			camel(f.Name), camel(f.Name)))
	}
	return b.String()
}

func rnInputs(e spec.Entity) string {
	var b strings.Builder
	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf(`      <TextInput
        value={String(draft.%s ?? '')}
        onChangeText={(text) => setDraft({ ...draft, %s: text as never })}
      />
`, camel(f.Name), camel(f.Name)))
	}
	return b.String()
}
