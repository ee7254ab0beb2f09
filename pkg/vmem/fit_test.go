package vmem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAlignUp(t *testing.T) {
	Convey("Given alignUp", t, func() {
		Convey("It rounds up to the next multiple of align", func() {
			So(alignUp(0, 0x1000), ShouldEqual, uintptr(0))
			So(alignUp(1, 0x1000), ShouldEqual, uintptr(0x1000))
			So(alignUp(0x1000, 0x1000), ShouldEqual, uintptr(0x1000))
			So(alignUp(0x1001, 0x1000), ShouldEqual, uintptr(0x2000))
		})
	})
}

func TestFit(t *testing.T) {
	Convey("Given a free segment [0, 0x10000)", t, func() {
		seg := &Segment{base: 0, size: 0x10000, typ: SegFree}

		Convey("An unconstrained request fits at the segment base", func() {
			addr, ok := fit(seg, constraint{size: 0x1000, align: 1})
			So(ok, ShouldBeTrue)
			So(addr, ShouldEqual, uintptr(0))
		})

		Convey("An aligned, phased request lands on the next phase+align slot (scenario 3)", func() {
			addr, ok := fit(seg, constraint{size: 0x100, align: 0x1000, phase: 0x8})
			So(ok, ShouldBeTrue)
			So(addr, ShouldEqual, uintptr(0x8))
		})

		Convey("minaddr narrows the window from below", func() {
			addr, ok := fit(seg, constraint{size: 0x100, align: 0x1000, minaddr: 0x4000})
			So(ok, ShouldBeTrue)
			So(addr, ShouldEqual, uintptr(0x4000))
		})

		Convey("maxaddr narrows the window from above", func() {
			_, ok := fit(seg, constraint{size: 0x100, align: 1, minaddr: 0xff00, maxaddr: 0xff80})
			So(ok, ShouldBeFalse)
		})

		Convey("A request larger than the segment never fits", func() {
			_, ok := fit(seg, constraint{size: 0x20000, align: 1})
			So(ok, ShouldBeFalse)
		})

		Convey("An empty intersection window (minaddr past maxaddr) never fits", func() {
			_, ok := fit(seg, constraint{size: 0x10, align: 1, minaddr: 0x9000, maxaddr: 0x8000})
			So(ok, ShouldBeFalse)
		})

		Convey("nocross is reserved and always rejected", func() {
			_, ok := fit(seg, constraint{size: 0x10, align: 1, nocross: 1})
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a free segment not starting at zero", t, func() {
		seg := &Segment{base: 0x4000, size: 0x1000, typ: SegFree}

		Convey("The request lands at the next aligned+phase slot within the full segment", func() {
			addr, ok := fit(seg, constraint{size: 0x800, align: 0x2000, phase: 0x100})
			So(ok, ShouldBeTrue)
			So(addr, ShouldEqual, uintptr(0x4100))
		})

		Convey("The same request overruns a maxaddr-narrowed window and is rejected", func() {
			_, ok := fit(seg, constraint{size: 0x800, align: 0x2000, phase: 0x100, maxaddr: 0x4800})
			So(ok, ShouldBeFalse)
		})
	})
}
