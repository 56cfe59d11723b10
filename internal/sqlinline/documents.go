package sqlinline

const QSelectDocumentsByOwner = `--sql b542ceae-a6ad-46c6-ac2c-413886e1bb03
select id, user_id, name, file_size, file_type, reading_progress, total_pages, current_page, last_read, created_at
from documents
where user_id = $1::uuid
order by created_at desc, id desc;
`

const QSelectOwnerUsage = `--sql 898df9ae-8ad2-4077-ab98-d431873eee44
select count(*), coalesce(sum(file_size), 0)
from documents
where user_id = $1::uuid;
`

const QInsertDocument = `--sql 6900dcf1-672d-408a-bc00-2095c90b1bc4
insert into documents (id, user_id, name, file_size, file_type, reading_progress, total_pages, current_page, created_at)
values ($1::uuid, $2::uuid, $3::text, $4::bigint, $5::text, 0, $6::int, 1, now())
returning created_at;
`

const QTouchUploadUsage = `--sql f6478d05-7eba-4c6b-9a18-f95556e86a37
update user_profiles
set usage_stats = jsonb_set(usage_stats, '{documentsUploaded}',
        to_jsonb(coalesce((usage_stats->>'documentsUploaded')::int, 0) + 1), true),
    updated_at = now()
where id = $1::uuid;
`

const QDeleteDocumentScoped = `--sql 62dd5bce-f9d3-4a73-94ee-5ba50b6c24ce
delete from documents
where id = $1::uuid
  and user_id = $2::uuid;
`

const QUpdateDocumentProgress = `--sql 4f314b93-def5-4f83-820d-271ba63ff435
update documents
set reading_progress = $3::int,
    current_page = greatest(1, ceil(total_pages * $3::int / 100.0))::int,
    last_read = now()
where id = $1::uuid
  and user_id = $2::uuid
returning id, user_id, name, file_size, file_type, reading_progress, total_pages, current_page, last_read, created_at;
`
