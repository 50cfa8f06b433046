package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/commands/genconfig"
	"github.com/tmchartrand/synceverything/pkg/commands/initialize"
	"github.com/tmchartrand/synceverything/pkg/commands/list"
	"github.com/tmchartrand/synceverything/pkg/commands/pull"
	"github.com/tmchartrand/synceverything/pkg/commands/push"
	"github.com/tmchartrand/synceverything/pkg/commands/remove"
	"github.com/tmchartrand/synceverything/pkg/commands/status"
	"github.com/tmchartrand/synceverything/pkg/config"
	"github.com/tmchartrand/synceverything/pkg/paths"
	"github.com/tmchartrand/synceverything/pkg/ui"
)

// loadSession loads configuration and wires a production session.
func loadSession(cfgFile string) (*commands.Session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	return commands.NewSession(cfg)
}

// profileArg returns the optional positional profile name.
func profileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newInitCmd(cfgFile *string) *cobra.Command {
	var nonInteractive bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(*cfgFile)
			if err != nil {
				return err
			}

			result, err := initialize.Init(initialize.InitOptions{
				Session:     s,
				Locator:     paths.NewLocator(s.FS),
				Interactive: !nonInteractive,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Settings:    %s\n", result.Paths.SettingsPath)
			fmt.Printf("Keybindings: %s\n", result.Paths.KeybindingsPath)
			fmt.Printf("Machine id:  %s\n", result.InstallationID)
			if result.MasterID == "" {
				fmt.Println(MsgNoMaster)
			} else {
				fmt.Printf("Master record: %s\n", result.MasterID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false,
		"Fail instead of prompting when a file cannot be located")
	return cmd
}

func newPushCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:     "push [profile]",
		Short:   MsgPushShort,
		Long:    MsgPushLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(*cfgFile)
			if err != nil {
				return err
			}

			result, err := push.Push(push.PushOptions{
				Session:     s,
				ProfileName: profileArg(args),
			})
			if err != nil {
				return err
			}

			if result.Created {
				fmt.Printf("Created master record %s\n", result.MasterID)
			}
			fmt.Printf("Pushed profile %s (%d extensions)\n",
				formatBold(result.ProfileName), result.Extensions)
			return nil
		},
	}
}

func newPullCmd(cfgFile *string) *cobra.Command {
	var (
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:     "pull [profile]",
		Short:   MsgPullShort,
		Long:    MsgPullLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(*cfgFile)
			if err != nil {
				return err
			}
			if yes {
				s.Confirmer = nil
			}

			result, err := pull.Pull(pull.PullOptions{
				Session:     s,
				ProfileName: profileArg(args),
				DryRun:      dryRun,
			})
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Print(ui.RenderExtensionDiff(result.Planned))
				fmt.Println(MsgDryRunNotice)
				return nil
			}

			if result.Apply.SettingsErr != nil {
				fmt.Printf("settings not written: %v\n", result.Apply.SettingsErr)
			}
			if result.Apply.KeybindingsErr != nil {
				fmt.Printf("keybindings not written: %v\n", result.Apply.KeybindingsErr)
			}
			fmt.Print(ui.RenderBatchResult(result.Apply.Batch))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

func newStatusCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:     "status [profile]",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(*cfgFile)
			if err != nil {
				return err
			}

			result, err := status.Status(status.StatusOptions{
				Session:     s,
				ProfileName: profileArg(args),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Profile: %s\n", formatBold(result.ProfileName))
			if result.LastSync != "" {
				fmt.Printf("Last sync: %s\n", result.LastSync)
			}
			for _, fileErr := range result.FileErrors {
				fmt.Printf("warning: %v\n", fileErr)
			}

			fmt.Println(formatBoldUpper("extensions"))
			if result.Extensions.Empty() {
				fmt.Println(MsgAlreadyInSync)
			} else {
				fmt.Print(ui.RenderExtensionDiff(result.Extensions))
			}

			fmt.Println(formatBoldUpper("settings"))
			fmt.Print(ui.RenderTextDiff(result.SettingsLocal, result.SettingsRemote))
			fmt.Println(formatBoldUpper("keybindings"))
			fmt.Print(ui.RenderTextDiff(result.KeybindingsLocal, result.KeybindingsRemote))

			if result.InSync() {
				fmt.Println("Everything is in sync.")
			}
			return nil
		},
	}
}

func newProfilesCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:     "profiles",
		Short:   MsgProfilesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(*cfgFile)
			if err != nil {
				return err
			}

			result, err := list.List(list.ListOptions{Session: s})
			if err != nil {
				return err
			}

			if len(result.Profiles) == 0 {
				fmt.Println(MsgNoProfiles)
				return nil
			}
			for _, name := range result.Profiles {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}
}

func newRemoveCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <profile>",
		Short:   MsgRemoveShort,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(*cfgFile)
			if err != nil {
				return err
			}

			if err := remove.Remove(remove.RemoveOptions{
				Session:     s,
				ProfileName: args[0],
			}); err != nil {
				return err
			}

			fmt.Printf("Removed profile %s\n", args[0])
			return nil
		},
	}
}

func newGenConfigCmd(cfgFile *string) *cobra.Command {
	var (
		force     bool
		effective bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig [path]",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := genconfig.GenConfigOptions{
				Path:      profileArg(args),
				Force:     force,
				Effective: effective,
			}
			if effective {
				cfg, err := config.Load(*cfgFile)
				if err != nil {
					return err
				}
				opts.Config = cfg
			}

			path, err := genconfig.GenConfig(opts)
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&effective, "effective", false,
		"Write the currently effective configuration instead of the default template")
	return cmd
}
