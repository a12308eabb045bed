// Package uploader moves a radicación's files from the client to object
// storage through the three-phase backend protocol.
//
// # Flow
//
//  1. ValidateBatch drops files that cannot upload (empty, oversized,
//     unreadable) before any network call.
//  2. Backend.Initiate opens the submission and returns one UploadToken per
//     accepted file.
//  3. Uploader.UploadAll transfers files in consecutive batches of
//     Config.Concurrency, each transfer wrapped by ExecuteWithRetry.
//  4. Uploader.Recover retries the files that still failed in a bounded number
//     of passes with an escalating pause.
//  5. Backend.Finalize asks the server to verify what actually landed.
//
// Orchestrator.Submit runs the whole sequence and folds the server verdict and
// the local per-file statuses into a Result.
//
// # Progress
//
// Every status transition is reported to the ProgressFunc with a copy of all
// FileStatus values. Callbacks are delivered one at a time, in transition
// order, and must not block for long: transfers wait on them.
//
// # Errors
//
// Per-file failures are data (FileStatus.Error), never returned errors. Submit
// only returns ErrNoValidFiles (as *BatchRejectedError), ErrInitiateFailed,
// ErrFinalizeFailed and ErrSubmissionDeleted.
package uploader
