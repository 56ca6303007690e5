// Package services contains application services for the SurLink client:
// scanning, status polling, statistics and history, local accounts and
// sessions, the quiz, theme preference, camera/OCR capture and feedback.
//
// Services persist through records.Store and log through logging.Logger.
// None of them print anything; rendering is left to the CLI.
package services
