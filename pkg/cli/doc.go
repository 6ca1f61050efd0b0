/*
Package cli provides command-line interface utilities for Mercator Saturn.

The cli package includes output formatters, progress reporters, typed CLI
errors, and signal handling used by the saturn command.

Output Formatting:

Command results render as text or JSON. Result types that implement
TextRenderer control their own text layout; everything formats to JSON
through the standard encoder:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Progress Reporting:

Long deletion batches report progress to stderr so the final report on
stdout stays clean:

	progress := cli.NewProgressReporter(nil, "Deleting")
	progress.Start(totalItems)
	for i := 0; i < totalItems; i++ {
		// Do work
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful cancellation on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// A cancelled ctx stops new deletions; outcomes stay complete.
*/
package cli
