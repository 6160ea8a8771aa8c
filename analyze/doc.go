// Package analyze estimates the memory footprint of tensor data at each
// supported precision and helps pick one.
//
// Analyze reports exact sizes and compression ratios together with a fixed
// per-precision accuracy-loss heuristic. The heuristic only ranks the options;
// it is not measured from the data. Measure runs a real quantization round
// trip when an actual error figure is needed.
package analyze
