// Package tasks reconciles the playlists of a media library's search index onto a symlink tree.
//
// # Components
//
//  1. [Sanitize] : strips path separators from names used as path segments
//  2. [Locator] : finds the downloaded media file for a video with the glob
//     "<source>/<uploader>/*_<videoID>_*"; the lexicographically first match wins
//  3. [ValidateEntry] : checks video id, title, uploader (warning only) and downloaded, in that order
//  4. [Reconciler] : walks every playlist, creates "<dest>/<name> [<id>]" and links
//     "<title> [<videoID>].<ext>" inside it
//
// # Idempotency
//
// The filesystem is the only state. An existing directory is left alone and an existing entry
// at a link path (including a dangling symlink) is never replaced, so a second run over the same
// input reports every link as already existing and changes nothing.
//
// # Failure Isolation
//
// Playlist documents without a name or id are skipped. Entry problems (missing fields, not downloaded,
// no matching media, no extension, symlink errors) are recorded in the [models.Report] and never stop the run.
// Only a failure to create a playlist directory, or a cancelled context, ends the run early.
//
// # Dry Run
//
// With [ReconcilerOpts.DryRun] every decision is computed and recorded but nothing is created.
package tasks
