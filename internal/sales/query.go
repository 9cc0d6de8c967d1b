package sales

// QueryRequest is one snapshot of the view's interaction state.
type QueryRequest struct {
	Window DateWindow
	Sort   SortSpec
}

// Query runs the full pipeline over records: filter by the window, then sort
// the filtered set for display and summarize it. The summary is taken from
// the filtered set before sorting.
func Query(records []SaleRecord, req QueryRequest) View {
	filtered := Filter(records, req.Window)
	return View{
		Records:       SortBy(filtered, req.Sort),
		Summary:       Summarize(filtered),
		FilteredCount: len(filtered),
		TotalCount:    len(records),
		Window:        req.Window,
		Sort:          req.Sort,
	}
}
