package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Raimguzhinov/spuquant/argb"
	"github.com/Raimguzhinov/spuquant/pixfmt"
)

func init() {
	runtime.LockOSThread()
}

func preview(items []*converted) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("ошибка инициализации SDL: %w", err)
	}
	defer sdl.Quit()

	for _, c := range items {
		pix, err := c.out.Pixels()
		if err != nil {
			return err
		}
		indexed := &ImageData{Name: c.src.Name, Width: c.out.Width, Height: c.out.Height, Pix: pix}
		if err := showPair(c.src, indexed); err != nil {
			return err
		}
	}
	return nil
}

func showPair(original, indexed *ImageData) error {
	winOrig, rendOrig, texOrig, err := createWindowAndTexture("Original "+original.Name, original, 100, 100)
	if err != nil {
		return err
	}
	defer winOrig.Destroy()
	defer rendOrig.Destroy()
	defer texOrig.Destroy()

	winConv, rendConv, texConv, err := createWindowAndTexture("4 colours "+indexed.Name, indexed, 300, 150)
	if err != nil {
		return err
	}
	defer winConv.Destroy()
	defer rendConv.Destroy()
	defer texConv.Destroy()

	for !waitClose() {
		renderWindow(rendOrig, texOrig)
		renderWindow(rendConv, texConv)
		sdl.Delay(16) // ~60 FPS
	}
	log.Println("Окна закрыты:", original.Name)
	return nil
}

func waitClose() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				return true
			}
		}
	}
	return false
}

func renderWindow(rend *sdl.Renderer, tex *sdl.Texture) {
	rend.SetDrawColor(0, 0, 0, 255)
	rend.Clear()
	rend.Copy(tex, nil, nil)
	rend.Present()
}

func createWindowAndTexture(title string, img *ImageData, x, y int) (*sdl.Window, *sdl.Renderer, *sdl.Texture, error) {
	w, h := img.Width, img.Height

	win, err := sdl.CreateWindow(title, int32(x), int32(y), int32(w), int32(h), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, nil, nil, err
	}
	rend, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		win.Destroy()
		return nil, nil, nil, err
	}
	tex, err := rend.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		rend.Destroy()
		win.Destroy()
		return nil, nil, nil, err
	}

	raw := argb.Bytes(img.Pix)
	pixfmt.CairoToGtk(raw)
	pixels, pitch, err := tex.Lock(nil)
	if err != nil {
		tex.Destroy()
		rend.Destroy()
		win.Destroy()
		return nil, nil, nil, err
	}
	for row := 0; row < h; row++ {
		copy(pixels[row*pitch:row*pitch+w*4], raw[row*w*4:(row+1)*w*4])
	}
	tex.Unlock()
	return win, rend, tex, nil
}
