// Package pagination provides sorting and paging of batch results for CLI
// output.
//
//   - PaginationParams: --limit/--offset and --page/--page-size flags and validation
//   - PaginationMeta: metadata reported alongside a paginated result
//   - OutcomeSorter: stable sorting of batch outcomes by a named field
package pagination
