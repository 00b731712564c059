// Package archive persists evaluated incidents for post-session stewarding
// review. Each record captures the incident facts and a summary of the
// evaluation outcome; the recommendations themselves are not persisted.
// Storage backends implement the Storage interface; the retention pruner
// enforces age and count limits on a cron schedule.
package archive
