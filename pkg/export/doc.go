// Package export renders a session for the outside world: the merged
// document of every selected file, a plain-text directory tree, or one
// document per selected file. Rendering is pure; Sinks deliver documents to
// files, writers or the clipboard.
//
// Each file's text goes through compression first and the line limit
// second, using the same resolution rules as the resolve package.
package export
