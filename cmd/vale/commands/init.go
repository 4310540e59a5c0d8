package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/project"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Title string `arg:"" help:"Project title; also the name of the created directory."`
	Force bool   `help:"Overwrite an existing project"`
}

func (i *InitCmd) Run(_ *Global, _ *CLI) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve working directory").Build()
	}
	return RunInit(filepath.Join(cwd, i.Title), i.Title, i.Force)
}

// RunInit scaffolds a project at path and prints the next step.
func RunInit(path, title string, force bool) error {
	if err := project.Init(path, title, force); err != nil {
		return err
	}
	fmt.Println("Created successfully!")
	fmt.Printf("To run use 'vale watch %s'\n", filepath.Base(path))
	return nil
}
