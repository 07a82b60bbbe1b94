package tools

import "errors"

// ValidateCall performs minimal validation of tool call arguments.
func ValidateCall(reg *Registry, name string, args map[string]interface{}) error {
	if reg == nil {
		return errors.New("tool registry unavailable")
	}
	schema, ok := reg.Schema(name)
	if !ok {
		return Validation(name, "unknown tool %q", name)
	}
	if err := validateAgainstSchema(schema, args); err != nil {
		return err
	}
	switch name {
	case "mvn_test":
		if reg.Maven == nil || reg.Maven.Terminal == nil || !reg.Maven.Terminal.AllowExecution {
			return Validation(name, "exec disabled by configuration")
		}
	case "git_status", "git_add_all", "git_commit", "git_push", "git_pull_request":
		if reg.Git == nil || !reg.Git.AllowExec {
			return Validation(name, "git operations disabled")
		}
	}
	return nil
}

func validateAgainstSchema(schema Schema, args map[string]interface{}) error {
	for _, field := range schema.Parameters {
		val, exists := args[field.Name]
		if field.Required && !exists {
			return Validation(schema.Name, "%s is required", field.Name)
		}
		if !exists {
			continue
		}
		switch field.Type {
		case "string":
			s, ok := val.(string)
			if !ok {
				return Validation(schema.Name, "%s must be string", field.Name)
			}
			if field.Required && s == "" {
				return Validation(schema.Name, "%s must not be empty", field.Name)
			}
		case "boolean":
			if _, ok := val.(bool); !ok {
				return Validation(schema.Name, "%s must be boolean", field.Name)
			}
		}
	}
	return nil
}
