package mcpserver

// PostFormatContract describes the canonical Markdown post format that
// LLM consumers should follow when creating or updating posts.
const PostFormatContract = `# QuickPost Post Format Contract

Every Markdown post stored in QuickPost follows this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title        # REQUIRED – used in listings and search
slug: url-friendly-identifier      # Assigned at creation; do not change it
publishDate: 2025-01-15T09:00:00-07:00   # Set automatically at creation
createdAt: 2025-01-15T16:00:00Z    # Set automatically
updatedAt: 2025-01-15T16:00:00Z    # Refreshed on every update
draft: true                        # Flip to false when ready to publish
---

Body text in standard Markdown (GFM: tables, task lists, strikethrough).
` + "```" + `

## Rules

1. **Frontmatter is mandatory.** The ` + "```" + `---` + "```" + ` fences must be the first
   thing in the file (no leading blank lines). QuickPost synthesizes the
   block when a post is created without one.
2. **` + "`" + `title` + "`" + ` is required.** It drives the slug and every listing.
3. **The slug is the post's identity.** It is derived from the title at
   creation (lowercase, hyphens, max 60 chars) and never changes afterwards,
   even when the title does.
4. **Keep ` + "`" + `draft: true` + "`" + ` until the post is ready.** QuickPost never
   flips it for you.
5. **Images** live in the post's own ` + "`" + `images/` + "`" + ` folder. Upload via the
   ` + "`" + `attach_image` + "`" + ` tool and paste the returned markdown into the body.
   Supported formats: png, jpg, gif, webp.
6. **Encoding** is UTF-8 with a trailing newline.

## Example

` + "```" + `markdown
---
title: Shipping the new editor
slug: shipping-the-new-editor
publishDate: 2025-01-20T09:00:00-07:00
createdAt: 2025-01-20T16:00:00Z
updatedAt: 2025-01-20T16:00:00Z
draft: true
---

# Shipping the new editor

We rebuilt the preview pane.

![Editor screenshot](/images/shipping-the-new-editor/screenshot.png)

| Before | After |
|--------|-------|
| 400ms  | 40ms  |
` + "```" + `
`
