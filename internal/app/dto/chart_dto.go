package dto

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type FramePoint struct {
	Bucket     int     `json:"bucket"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Cumulative float64 `json:"cumulative"`
}

type ChartResponse struct {
	Title  string        `json:"title"`
	Mode   string        `json:"mode"`
	Bucket string        `json:"bucket,omitempty"`
	Series []SeriesPoint `json:"series,omitempty"`
	Frames []FramePoint  `json:"frames,omitempty"`
}

type DatasetInfo struct {
	Source  string `json:"source"`
	Label   string `json:"label"`
	Records int    `json:"records"`
	Years   []int  `json:"years"`
}

type DatasetsResponse struct {
	Datasets []DatasetInfo `json:"datasets"`
}
