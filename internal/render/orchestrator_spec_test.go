package render

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/glyphcast/glyphcast/internal/grid"
	"github.com/glyphcast/glyphcast/internal/layout"
	"github.com/glyphcast/glyphcast/internal/source"
)

var _ = Describe("animation orchestrator", func() {
	newSource := func(n int, delay time.Duration) *fakeSource {
		return &fakeSource{frames: uniformFrames(n, delay), failAt: -1}
	}

	Describe("without a target frame rate", func() {
		It("emits one output per source frame with source timing", func() {
			anim, err := Animate(context.Background(), newSource(6, 80*time.Millisecond), layout.FixedColumns(4), testOptions(), 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(anim.Frames).To(HaveLen(6))
			Expect(anim.Frames[3].Timestamp).To(Equal(240 * time.Millisecond))
			Expect(anim.Duration).To(Equal(480 * time.Millisecond))
		})
	})

	Describe("retiming", func() {
		It("lands every output on the uniform target grid", func() {
			anim, err := Animate(context.Background(), newSource(8, 100*time.Millisecond), layout.FixedColumns(4), testOptions(), 12.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(anim.Frames).To(HaveLen(10)) // ceil(0.8s * 12.5)
			for i, f := range anim.Frames {
				Expect(f.Timestamp).To(Equal(time.Duration(float64(i) / 12.5 * float64(time.Second))))
			}
		})

		It("duplicates frames when the target rate exceeds the source rate", func() {
			anim, err := Animate(context.Background(), newSource(3, 200*time.Millisecond), layout.FixedColumns(4), testOptions(), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(anim.Frames).To(HaveLen(6))
		})

		It("still renders a zero-duration source once", func() {
			src := &fakeSource{frames: uniformFrames(1, 0), failAt: -1}
			anim, err := Animate(context.Background(), src, layout.FixedColumns(4), testOptions(), 24)
			Expect(err).NotTo(HaveOccurred())
			Expect(anim.Frames).To(HaveLen(1))
			Expect(anim.Frames[0].Timestamp).To(BeZero())
		})
	})

	Describe("failure handling", func() {
		It("keeps streamed frames but returns the frame error", func() {
			src := &fakeSource{frames: uniformFrames(5, 50*time.Millisecond), failAt: 2, err: source.ErrDecode}
			var delivered []*grid.Output
			err := AnimateStream(context.Background(), src, layout.FixedColumns(4), testOptions(), 0, func(o *grid.Output) bool {
				delivered = append(delivered, o)
				return true
			})
			Expect(err).To(MatchError(source.ErrDecode))
			Expect(delivered).To(HaveLen(2))
		})
	})
})
