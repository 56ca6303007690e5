// Package capture talks to the external programs used to turn a camera frame
// or an image into text: ffmpeg grabs a single PNG frame from a V4L2 device and
// tesseract runs OCR over it.
//
// Both are driven through os/exec. The OCR engine and the capture stack are not
// reimplemented here.
package capture
