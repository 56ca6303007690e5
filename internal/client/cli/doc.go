// Package cli provides the interactive SurLink command-line client.
//
// It wires configuration, the local records store, the scanner services and an
// interactive REPL. Typical flow: restore theme, stats and session, start the
// background status poller, then execute user commands until exit.
//
// Key features:
//   - scan typed text, camera captures (ffmpeg) or image files (tesseract OCR)
//   - history, stats and live classifier/explainer status
//   - local accounts with profile pictures
//   - the phishing awareness quiz and feedback
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// ctx is cancelled. See App, runREPL and execIface for details.
package cli
