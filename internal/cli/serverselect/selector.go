package serverselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/chessctl-dev/chessctl/internal/cli/config"
	"github.com/chessctl-dev/chessctl/internal/cli/userconfig"
)

// ResolveServer determines which server to use based on the following priority:
// 1. If serverAlias flag is provided, use that server
// 2. If user has a selected server in their local config, use that
// 3. If only one server in project config, use that
// 4. Otherwise, prompt user to select a server interactively
func ResolveServer(projectConfig *config.Config, serverAlias string) (*config.Server, error) {
	if serverAlias != "" {
		return projectConfig.GetServerByAlias(serverAlias)
	}

	selectedURL, err := userconfig.GetSelectedServer()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedURL != "" {
		server, err := projectConfig.GetServerByURL(selectedURL)
		if err == nil {
			return server, nil
		}
		// Selected server no longer exists in project config, clear it and continue
		_ = userconfig.SetSelectedServer("")
	}

	if len(projectConfig.Servers) == 1 {
		server := &projectConfig.Servers[0]
		if err := userconfig.SetSelectedServer(server.URL); err != nil {
			fmt.Printf("Warning: failed to save selected server: %v\n", err)
		}
		return server, nil
	}

	server, err := PromptServerSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedServer(server.URL); err != nil {
		fmt.Printf("Warning: failed to save selected server: %v\n", err)
	}

	return server, nil
}

// PromptServerSelection shows an interactive prompt for the user to select a server
func PromptServerSelection(projectConfig *config.Config) (*config.Server, error) {
	if len(projectConfig.Servers) == 0 {
		return nil, fmt.Errorf("no servers configured in %s", config.ConfigFileName)
	}

	type serverOption struct {
		Label  string
		Server *config.Server
	}

	options := make([]serverOption, len(projectConfig.Servers))
	for i := range projectConfig.Servers {
		server := &projectConfig.Servers[i]
		options[i] = serverOption{
			Label:  fmt.Sprintf("%s (%s)", server.Alias, server.URL),
			Server: server,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a server",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server selection cancelled: %w", err)
	}

	return options[index].Server, nil
}

// GetServerByURLOrAlias finds a server by URL or alias
func GetServerByURLOrAlias(cfg *config.Config, urlOrAlias string) (*config.Server, error) {
	if server, err := cfg.GetServerByURL(urlOrAlias); err == nil {
		return server, nil
	}
	if server, err := cfg.GetServerByAlias(urlOrAlias); err == nil {
		return server, nil
	}
	return nil, fmt.Errorf("server with URL or alias '%s' not found", urlOrAlias)
}
