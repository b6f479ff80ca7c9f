// Package page contains ready-made pages for the rotator: static and dynamic text, images, a
// bouncing screensaver and a "digital rain" animation.
//
// All pages draw in [pixel.On] on a cleared surface and implement [pager.Page]; the frame rates
// they declare are the ones they need, not more.
package page
