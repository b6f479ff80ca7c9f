// Package pager rotates pages of content on a small monochrome display.
//
// A [Rotator] owns the display and a fixed set of [Page] values. It shows one page at a time,
// drives the page at the frame rate the page asks for, and moves on when the page's time is up
// or when a [Controller] asks it to go forward or back:
//
//	rotator := pager.New(oled, 5)
//	_ = rotator.AddPage(page.NewText("Hello, World!"))
//	_ = rotator.AddPageWithDuration(rain, 10*time.Second)
//	if err := rotator.Init(ctx); err != nil {
//		return err
//	}
//	go remote(rotator.Controller())
//	return rotator.Rotate(ctx)
//
// Every turn gets a generation number. The timer that ends a turn remembers the generation it
// was armed for and only cancels that very turn, so a timer that fires late never cuts short the
// page that replaced it.
package pager
