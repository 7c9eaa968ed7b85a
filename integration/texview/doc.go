// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texview uploads interactive frames into a GPU texture.
//
// The controller produces packed RGB frames; textures want four bytes per
// texel. An Uploader expands each accepted frame into a reusable staging
// buffer in the texture's byte order and hands it to a
// gpucontext.TextureUpdater:
//
//	sink := interactive.NewLatestSink()
//	ctrl := interactive.NewController(sink)
//	pres := interactive.NewPresenter(sink, width, height)
//	up, err := texview.NewUploader(texture, texview.WithFormat(surfaceFormat))
//	...
//	// once per redraw
//	if _, err := up.Present(pres); err != nil {
//	    log.Printf("upload: %v", err)
//	}
package texview
