// Package camera pairs instruments into camera units.
//
// A camera is identified by the last token of its instruments' names: "Cámara 4"
// and "CAM S/EV 4" both belong to camera "4". The naming heuristic lives
// entirely in Classify; Group accepts any Matcher so other conventions can be
// plugged in without touching the aggregation pipeline.
package camera
