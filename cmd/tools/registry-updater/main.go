// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"publication-rewards/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)

	for _, fs := range []*flag.FlagSet{addCmd, updateCmd, validateCmd, listCmd, checkCmd} {
		fs.StringVar(&registryPath, "path", "configs/activity-registry.json", "Path to registry file")
	}

	// Add command flags
	idAdd := addCmd.String("id", "", "Activity ID (e.g., calculate-reward)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Calculate Reward)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., reward)")
	taskType := addCmd.String("taskType", "", "Camunda Task Type (e.g., calculate-reward)")
	version := addCmd.String("version", "1.0.0", "Version")
	implStatus := addCmd.String("status", "planned", "Implementation Status (planned, in-progress, completed, verified)")
	httpRoute := addCmd.String("httpRoute", "", "HTTP route serving the same operation (e.g., GET /api/v1/reward)")
	inputSchema := addCmd.String("inputSchema", `{"type": "object"}`, "Input JSON schema for job variables")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, etc.)")
	value := updateCmd.String("value", "", "New value for the field")

	// Check command flags
	checkTaskType := checkCmd.String("taskType", "", "Task type whose input schema to check against")
	variables := checkCmd.String("variables", "{}", "Job variables as JSON")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *description == "" || *category == "" || *taskType == "" {
			fmt.Println("Error: id, displayName, description, category, and taskType are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		activity := registry.Activity{
			ID:                   *idAdd,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			TaskType:             *taskType,
			ImplementationStatus: *implStatus,
			HTTPRoute:            *httpRoute,
			OutputSchema:         map[string]interface{}{"type": "object"},
			ErrorCodes:           []string{},
			Timeout:              "10s",
			Retries:              0,
			Tags:                 []string{},
		}
		if err := activity.SetInputSchema(*inputSchema); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := addActivity(&activity); err != nil {
			fmt.Printf("Error adding activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added activity: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := loadValid()
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "list":
		listCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}
		for _, a := range reg.Activities {
			route := a.HTTPRoute
			if route == "" {
				route = "-"
			}
			fmt.Printf("%-22s %-10s %-12s timeout=%-4s retries=%d  %s\n",
				a.TaskType, a.Category, a.ImplementationStatus, a.Timeout, a.Retries, route)
		}

	case "check":
		checkCmd.Parse(os.Args[2:])
		if *checkTaskType == "" {
			fmt.Println("Error: taskType is required for check.")
			checkCmd.Usage()
			os.Exit(1)
		}
		if err := checkVariables(*checkTaskType, *variables); err != nil {
			fmt.Printf("Input rejected: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Input accepted.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func loadValid() (*registry.ActivityRegistry, error) {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func addActivity(activity *registry.Activity) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		// If file doesn't exist, create new registry
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	for _, existing := range reg.Activities {
		if existing.ID == activity.ID {
			return fmt.Errorf("activity with ID %s already exists", activity.ID)
		}
	}

	reg.Activities = append(reg.Activities, *activity)
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	if err := reg.Validate(); err != nil {
		return err
	}
	return registry.Save(reg, registryPath)
}

func updateActivity(id, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "displayName":
		activity.DisplayName = value
	case "description":
		activity.Description = value
	case "category":
		activity.Category = value
	case "taskType":
		activity.TaskType = value
	case "httpRoute":
		activity.HTTPRoute = value
	case "timeout":
		activity.Timeout = value
	case "inputSchema":
		if err := activity.SetInputSchema(value); err != nil {
			return err
		}
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return registry.Save(reg, registryPath)
}

// checkVariables decodes variables the way the worker would before running.
func checkVariables(taskType, variables string) error {
	reg, err := loadValid()
	if err != nil {
		return err
	}
	activity, ok := reg.Find(taskType)
	if !ok {
		return fmt.Errorf("no activity registered for task type %s", taskType)
	}

	var decoded map[string]interface{}
	if err := activity.DecodeInput(variables, &decoded); err != nil {
		return err
	}
	keys := make([]string, 0, len(decoded))
	for k := range decoded {
		keys = append(keys, k)
	}
	fmt.Printf("Decoded variables: %s\n", strings.Join(keys, ", "))
	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new activity to the registry
  update   Update an existing activity's field
  validate Validate the registry file
  list     List registered activities
  check    Check job variables against an activity's input schema
  help     Show this help message

Examples:
  registry-updater add -id calculate-reward -displayName "Calculate Reward" -description "Maps points to a reward" -category reward -taskType calculate-reward
  registry-updater update -id search-journals -field timeout -value 15s
  registry-updater update -id search-journals -field inputSchema -value '{"type": "object", "properties": {"query": {"type": "string"}}}'
  registry-updater validate -path configs/activity-registry.json
  registry-updater check -taskType calculate-reward -variables '{"points": 3.3}'

Use 'registry-updater <command> -h' for more information about a command.
`)
}
