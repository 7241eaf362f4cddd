// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/xnat-tools/xnatio/sdk/events"
	"github.com/xnat-tools/xnatio/sdk/services/workflow"
	"github.com/xnat-tools/xnatio/sdk/utils"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

// isFileURI reports whether uri names one file rather than a folder.
func isFileURI(uri string) bool {
	return xnat.LevelOf(uri) == xnat.Files && !xnat.PathEndsWith(uri, string(xnat.Files))
}

// downloadTarget picks the remote source and local path for a get. Folders
// are fetched as one zip archive named after the folder.
func (a *app) downloadTarget(uri, dest string) (src, dst string) {
	name := xnat.BaseName(uri)
	if !isFileURI(uri) {
		src, name = xnat.ZipURI(uri), name+".zip"
	} else {
		src = uri
	}
	if isDir, _ := afero.IsDir(a.fs, dest); isDir || strings.HasSuffix(dest, "/") {
		return src, filepath.Join(dest, name)
	}
	return src, dest
}

func newGetCmd(a *app) *cobra.Command {
	var classify bool

	cmd := &cobra.Command{
		Use:   "get <uri> <dest>",
		Short: "Download a file or folder",
		Long: `Download a file, or a whole folder as a zip archive, to <dest>. When
<dest> is an existing directory the download is placed inside it.

With --classify, zip archives are unpacked next to the download and the
content is grouped into scenes, Analyze volumes, DICOM series and other files.`,
		Example: `  xnatio get /experiments/E1/scans/1/files/img.dcm ./dl/
  xnatio get /projects/P1/subjects/S1/experiments/E1 ./dl/ --classify`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			src, dst := a.downloadTarget(args[0], args[1])

			var failure string
			c.Subscribe(events.DownloadFailed, func(ev events.Event) { failure = ev.Err })
			utils.NewProgress(a.errOut, 100*time.Millisecond).Attach(c)

			c.Enqueue(src, dst)
			if err := c.StartQueue(cmd.Context(), nil, nil); err != nil {
				return err
			}
			if failure != "" {
				return fmt.Errorf("download of %s failed: %s", args[0], failure)
			}
			a.log.Info("downloaded", "uri", args[0], "path", dst)

			if !classify {
				return nil
			}
			return a.classify(dst)
		},
	}
	cmd.Flags().BoolVar(&classify, "classify", false, "Unpack and classify the downloaded material")
	return cmd
}

func (a *app) classify(dst string) error {
	wf := workflow.NewWorkflowService(a.fs)
	dir := filepath.Dir(dst)
	if strings.EqualFold(filepath.Ext(dst), ".zip") {
		dir = strings.TrimSuffix(dst, filepath.Ext(dst))
		if _, err := wf.Unpack(dst, dir); err != nil {
			return err
		}
	}
	res, err := wf.Classify(dir)
	if err != nil {
		return err
	}
	if utils.TranslateFormat(a.output) != utils.FormatShort {
		return utils.PrintValue(a.out, a.output, res)
	}
	fmt.Fprintf(a.out, "%s: %d scene(s), %d Analyze volume(s), %d DICOM series, %d other file(s)\n",
		dir, len(res.Scenes), len(res.Analyze), len(res.DICOM), len(res.Misc))
	return nil
}

// sceneTarget maps "project/subject/experiment" and a local file to the
// experiment's scene resource.
func sceneTarget(scene, local string) (string, error) {
	parts := strings.Split(strings.Trim(scene, "/"), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", fmt.Errorf("--scene must be project/subject/experiment, got %q", scene)
	}
	return xnat.SceneUploadURI(parts[0], parts[1], parts[2], filepath.Base(local)), nil
}

func newPutCmd(a *app) *cobra.Command {
	var keepExisting bool
	var scene string

	cmd := &cobra.Command{
		Use:   "put <local> [<remote>]",
		Short: "Upload a local file",
		Long: `Upload <local> to the archive path <remote>. An existing remote file is
deleted first unless --keep-existing is given.

With --scene the file is stored in the Slicer resource of the named
experiment instead and <remote> must be omitted.`,
		Example: `  xnatio put scene.mrb /projects/P1/subjects/S1/experiments/E1/resources/Slicer/files/scene.mrb
  xnatio put scene.mrb --scene P1/S1/E1`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var remote string
			switch {
			case scene != "" && len(args) == 2:
				return errors.New("give either <remote> or --scene, not both")
			case scene != "":
				var err error
				if remote, err = sceneTarget(scene, args[0]); err != nil {
					return err
				}
			case len(args) == 2:
				remote = args[1]
			default:
				return errors.New("<remote> or --scene is required")
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.UploadFile(cmd.Context(), args[0], remote, !keepExisting); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Uploaded %s to %s\n", args[0], c.MakeURL(remote))
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepExisting, "keep-existing", false, "Do not delete the remote file first")
	cmd.Flags().StringVar(&scene, "scene", "", "Upload into the Slicer resource of project/subject/experiment")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <uri>",
		Short: "Delete an archive resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if !yes {
				msg := fmt.Sprintf("Delete %s? (y/N): ", c.MakeURL(args[0]))
				if err := utils.WaitForConfirmation(a.in, a.errOut, msg); err != nil {
					return err
				}
			}
			return c.DeleteResource(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

func newMkdirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <uri>",
		Short: "Create an archive folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			return c.CreateFolder(cmd.Context(), args[0])
		},
	}
}
