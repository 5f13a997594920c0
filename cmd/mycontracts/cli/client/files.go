package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mwantia/mycontracts/internal/app"
	"github.com/mwantia/mycontracts/pkg/derive"
	"github.com/mwantia/mycontracts/pkg/device"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/mwantia/mycontracts/pkg/view"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Manage contract documents",
		Long:  "List, inspect, upload and annotate the contract documents stored by the backend.",
	}

	cmd.AddCommand(NewFilesListCommand())
	cmd.AddCommand(NewFilesShowCommand())
	cmd.AddCommand(NewFilesUploadCommand())
	cmd.AddCommand(NewFilesRemoveCommand())
	cmd.AddCommand(NewFilesMarkersCommand())
	cmd.AddCommand(NewFilesDueCommand())
	cmd.AddCommand(NewFilesNoteCommand())
	cmd.AddCommand(NewFilesDownloadCommand())
	cmd.AddCommand(NewFilesShareCommand())
	cmd.AddCommand(NewFilesBulkMarkersCommand())
	cmd.AddCommand(NewFilesBulkDueCommand())

	return cmd
}

func NewFilesListCommand() *cobra.Command {
	var markerFilter string
	var ocrFilter string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List documents",
		Long:  "List all documents, optionally filtered by marker (or NEEDS_ATTENTION) and OCR status (or NONE).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			marker, err := parseFilter("marker", markerFilter, derive.MarkerFilterOptions())
			if err != nil {
				return err
			}
			ocr, err := parseFilter("OCR", ocrFilter, derive.OcrFilterOptions())
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				files, err := a.Client().ListFiles(cmd.Context())
				if err != nil {
					return err
				}

				now := time.Now()
				files = derive.FilterFiles(files, marker, ocr, now)

				return render(cmd, files, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tFILENAME\tSIZE\tOCR\tDUE\tMARKERS")
					for _, f := range files {
						due := derive.Placeholder
						if f.DueDate != nil {
							due = derive.DueLabel(f.DueDate, now)
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
							f.ID, f.Filename, derive.FormatBytes(f.Size), f.Ocr(), due, joinMarkers(f.Markers))
					}
				})
			})
		},
	}

	cmd.Flags().StringVarP(&markerFilter, "marker", "m", derive.FilterAll, "marker filter: "+strings.Join(derive.MarkerFilterOptions(), ", "))
	cmd.Flags().StringVar(&ocrFilter, "ocr", derive.FilterAll, "OCR filter: "+strings.Join(derive.OcrFilterOptions(), ", "))
	addOutputFlag(cmd)

	return cmd
}

func NewFilesShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show document details",
		Long:  "Show the full record of a document including its OCR result.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				d, err := a.Client().GetFile(cmd.Context(), id)
				if err != nil {
					return documentError(err, id)
				}

				return render(cmd, d, func(w io.Writer) {
					fmt.Fprintf(w, "ID\t%d\n", d.ID)
					fmt.Fprintf(w, "Filename\t%s\n", d.Filename)
					fmt.Fprintf(w, "Type\t%s\n", d.Mime)
					fmt.Fprintf(w, "Size\t%s\n", derive.FormatBytes(d.Size))
					fmt.Fprintf(w, "Created\t%s\n", derive.FormatDate(d.CreatedAt))
					fmt.Fprintf(w, "Due\t%s\n", derive.FormatDate(d.DueDate))
					fmt.Fprintf(w, "Markers\t%s\n", joinMarkers(d.Markers))
					if d.Note != nil {
						fmt.Fprintf(w, "Note\t%s\n", *d.Note)
					}
					if d.Contract != nil {
						fmt.Fprintf(w, "Contract\t%s\n", d.Contract.Title)
					}
					if d.Ocr == nil {
						fmt.Fprintf(w, "OCR\t%s\n", derive.Placeholder)
						return
					}
					fmt.Fprintf(w, "OCR\t%s (retries %d, processed %s)\n", d.Ocr.Status, d.Ocr.RetryCount, derive.FormatDate(d.Ocr.ProcessedAt))
					if d.Ocr.RawJSON != "" {
						fmt.Fprintf(w, "\n%s\n", derive.PrettyJSON(d.Ocr.RawJSON))
					}
				})
			})
		},
	}

	addOutputFlag(cmd)
	return cmd
}

func NewFilesUploadCommand() *cobra.Command {
	var camera, gallery bool
	var encoded, name string

	cmd := &cobra.Command{
		Use:   "upload [path]...",
		Short: "Upload documents",
		Long: "Upload local files, a base64 payload or data URL (--base64, '-' reads stdin) " +
			"or a capture from the device camera or gallery on native builds. Uploads run concurrently.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && encoded == "" && !camera && !gallery {
				return fmt.Errorf("nothing to upload")
			}
			if encoded != "" && name == "" {
				return fmt.Errorf("--name is required with --base64")
			}

			return withApp(func(a *app.App) error {
				dev := a.Device()
				picked, err := dev.PickFiles(args...)
				if err != nil {
					return err
				}

				if camera {
					photo, err := dev.TakePhoto(cmd.Context())
					if err != nil {
						return fmt.Errorf("failed to take photo: %w", err)
					}
					picked = append(picked, *photo)
				}
				if gallery {
					image, err := dev.PickImage(cmd.Context())
					if err != nil {
						return fmt.Errorf("failed to pick image: %w", err)
					}
					picked = append(picked, *image)
				}
				if encoded != "" {
					payload, err := readPayload(cmd.InOrStdin(), encoded)
					if err != nil {
						return err
					}
					f, err := device.Base64ToFile(payload, name, "")
					if err != nil {
						return err
					}
					picked = append(picked, *f)
				}

				var mu sync.Mutex
				p := pool.New().WithMaxGoroutines(4).WithErrors()
				for _, f := range picked {
					p.Go(func() error {
						created, err := a.Client().UploadFile(cmd.Context(), f.Name, bytes.NewReader(f.Data))
						if err != nil {
							return err
						}
						mu.Lock()
						defer mu.Unlock()
						fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as %d\n", created.Filename, created.ID)
						return nil
					})
				}
				return p.Wait()
			})
		},
	}

	cmd.Flags().BoolVar(&camera, "camera", false, "capture a photo with the device camera")
	cmd.Flags().BoolVar(&gallery, "gallery", false, "pick an image from the device gallery")
	cmd.Flags().StringVar(&encoded, "base64", "", "base64 payload or data URL to upload, '-' reads stdin")
	cmd.Flags().StringVar(&name, "name", "", "filename of the --base64 upload")

	return cmd
}

// readPayload returns value, or all of in when value is "-"
func readPayload(in io.Reader, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func NewFilesRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				for _, id := range ids {
					if err := a.Client().DeleteFile(cmd.Context(), id); err != nil {
						return documentError(err, id)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %d\n", id)
				}
				return nil
			})
		},
	}

	return cmd
}

func NewFilesMarkersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markers <id> [marker]...",
		Short: "Replace the markers of a document",
		Long:  "Replace the markers of a document. Without markers the set is cleared. Known markers: " + joinMarkers(models.MarkerOptions),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				return a.Client().UpdateMarkers(cmd.Context(), id, parseMarkers(args[1:]))
			})
		},
	}

	return cmd
}

func NewFilesDueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due <id> <YYYY-MM-DD|none>",
		Short: "Set or clear the due date of a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			due, err := parseDue(args[1])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				return a.Client().UpdateDueDate(cmd.Context(), id, due)
			})
		},
	}

	return cmd
}

func NewFilesNoteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note <id> [text]...",
		Short: "Replace the note of a document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				return a.Client().UpdateNote(cmd.Context(), id, strings.Join(args[1:], " "))
			})
		},
	}

	return cmd
}

func NewFilesDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a document",
		Long:  "Download a document into the configured documents directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				d, err := a.Client().GetFile(cmd.Context(), id)
				if err != nil {
					return documentError(err, id)
				}

				path, err := a.Device().DownloadFile(cmd.Context(), a.Client().DownloadURL(id), d.Filename)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
				return nil
			})
		},
	}

	return cmd
}

func NewFilesShareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Share the download link of a document",
		Long:  "Hands the download link of a document to the configured share command.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				url := a.Client().DownloadURL(id)
				shared, err := a.Device().ShareFile(cmd.Context(), url, args[0])
				if err != nil {
					return err
				}
				if !shared {
					fmt.Fprintln(cmd.OutOrStdout(), url)
				}
				return nil
			})
		},
	}

	return cmd
}

func NewFilesBulkMarkersCommand() *cobra.Command {
	var ids []string

	cmd := &cobra.Command{
		Use:   "bulk-markers [marker]...",
		Short: "Replace the markers of several documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			fileIDs, err := parseIDs(ids)
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				return bulk(cmd, a, func(fc *view.FilesController, ctx context.Context) error {
					return fc.BulkMarkers(ctx, fileIDs, parseMarkers(args))
				})
			})
		},
	}

	cmd.Flags().StringSliceVar(&ids, "ids", nil, "document ids (comma separated)")
	cmd.MarkFlagRequired("ids")

	return cmd
}

func NewFilesBulkDueCommand() *cobra.Command {
	var ids []string

	cmd := &cobra.Command{
		Use:   "bulk-due <YYYY-MM-DD|none>",
		Short: "Set or clear the due date of several documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileIDs, err := parseIDs(ids)
			if err != nil {
				return err
			}
			due, err := parseDue(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				return bulk(cmd, a, func(fc *view.FilesController, ctx context.Context) error {
					return fc.BulkDueDate(ctx, fileIDs, due)
				})
			})
		},
	}

	cmd.Flags().StringSliceVar(&ids, "ids", nil, "document ids (comma separated)")
	cmd.MarkFlagRequired("ids")

	return cmd
}

// bulk applies a bulk update through the files controller, which refetches
// the list afterwards, and reports the resulting file count
func bulk(cmd *cobra.Command, a *app.App, fn func(*view.FilesController, context.Context) error) error {
	fc := view.NewFilesController(a.Client(), a.Logger())
	if err := fn(fc, cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated; %d documents in total\n", len(fc.State().Files))
	return nil
}

func parseMarkers(args []string) []models.Marker {
	markers := make([]models.Marker, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				markers = append(markers, models.Marker(strings.ToUpper(part)))
			}
		}
	}
	return markers
}

func parseDue(arg string) (*time.Time, error) {
	if strings.EqualFold(arg, "none") {
		return nil, nil
	}
	return view.ParseDueDate(strings.TrimSpace(arg))
}

func joinMarkers(markers []models.Marker) string {
	if len(markers) == 0 {
		return derive.Placeholder
	}
	parts := make([]string, len(markers))
	for i, m := range markers {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}
