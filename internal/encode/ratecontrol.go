package encode

import "strconv"

// rateControl is the structured per-vendor encoder selection consumed
// uniformly by the planner. Each accelerator maps its quality knob onto the
// vocabulary its encoder actually accepts; the semantics of the value 0
// differ per vendor and are special-cased below.
type rateControl struct {
	// decodeHint is emitted before the input to enable hardware decoding.
	decodeHint []string
	// codec selects the encoder and its fixed tuning flags.
	codec []string
	// quality carries the quality-derived rate-control flags. Left empty
	// when an explicit bitrate overrides quality entirely.
	quality []string
}

// rateControlFor builds the vendor-specific rate control for a job.
//
// Vendor knob semantics at quality 0:
//   - NVIDIA nvenc treats 0 as "auto", which degrades quality instead of
//     improving it, so lossless requires the explicit constqp mode.
//   - AMD amf accepts 0 as a valid lossless quantizer directly.
//   - Intel qsv's global_quality range does not support 0 meaningfully;
//     the best finite value 1 substitutes.
//   - CPU x264 treats CRF 0 as legitimate lossless.
func rateControlFor(accel Accelerator, quality int, explicitBitrate bool) rateControl {
	var rc rateControl
	switch accel {
	case AccelNVIDIA:
		rc.decodeHint = []string{"-hwaccel", "cuda"}
		rc.codec = []string{"-c:v", "h264_nvenc", "-preset", "p4"}
		if !explicitBitrate {
			if quality == QualityLossless {
				rc.quality = []string{"-rc", "constqp", "-qp", "0"}
			} else {
				rc.quality = []string{"-rc", "vbr", "-cq", strconv.Itoa(quality), "-b:v", "0"}
			}
		}
	case AccelAMD:
		rc.decodeHint = []string{"-hwaccel", "dxva2"}
		rc.codec = []string{"-c:v", "h264_amf", "-usage", "transcoding"}
		if !explicitBitrate {
			q := strconv.Itoa(quality)
			rc.quality = []string{"-rc", "cqp", "-qp_i", q, "-qp_p", q}
		}
	case AccelIntel:
		rc.decodeHint = []string{"-hwaccel", "qsv"}
		rc.codec = []string{"-c:v", "h264_qsv", "-preset", "medium"}
		if !explicitBitrate {
			q := quality
			if q == QualityLossless {
				q = 1
			}
			rc.quality = []string{"-global_quality", strconv.Itoa(q)}
		}
	default: // CPU
		rc.codec = []string{"-c:v", "libx264", "-preset", "medium"}
		if !explicitBitrate {
			rc.quality = []string{"-crf", strconv.Itoa(quality)}
		}
	}
	return rc
}
